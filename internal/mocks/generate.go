package mocks

//go:generate mockery --name RecordSource --srcpkg github.com/aevon-lab/salesboard/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name BoundaryResolver --srcpkg github.com/aevon-lab/salesboard/internal/geo --output ./geo --outpkg geomocks --with-expecter
