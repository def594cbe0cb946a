package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PlayerAPI --dir ../usecase --output usecase --outpkg usecasemock --filename player_api_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PlayerResponse --dir ../usecase --output usecase --outpkg usecasemock --filename player_response_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Output --dir ../usecase --output usecase --outpkg usecasemock --filename output_mock.go
