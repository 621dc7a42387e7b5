package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/matchreport --output domain/matchreport --outpkg matchreportmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/schedule --output domain/schedule --outpkg schedulemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name DocumentFetcher --dir ../usecase --output usecase --outpkg usecasemock --filename document_fetcher_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Extractor --dir ../usecase --output usecase --outpkg usecasemock --filename extractor_mock.go
