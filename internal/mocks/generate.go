package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name FootballDataSource --dir ../usecase --output usecase --outpkg usecasemock --filename football_data_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TheSportsDBSource --dir ../usecase --output usecase --outpkg usecasemock --filename the_sports_db_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SportMonksSource --dir ../usecase --output usecase --outpkg usecasemock --filename sport_monks_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name WikidataSource --dir ../usecase --output usecase --outpkg usecasemock --filename wikidata_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name DocumentSource --dir ../usecase --output usecase --outpkg usecasemock --filename document_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ImageFetcher --dir ../usecase --output usecase --outpkg usecasemock --filename image_fetcher_mock.go
