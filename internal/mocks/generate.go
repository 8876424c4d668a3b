package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/derby --output domain/derby --outpkg derbymock --filename repository_mock.go
