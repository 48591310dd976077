package mocks

//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/MohanLi/tickbench/internal/strategy Strategy
//go:generate mockgen -destination=./mock_source.go -package=mocks github.com/MohanLi/tickbench/internal/datasource TickSource
