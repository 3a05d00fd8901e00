package usecase

import (
	"context"

	"github.com/jhoicas/Cartera-api/internal/application/dto"
	"github.com/jhoicas/Cartera-api/internal/domain/repository"
)

// DatasetUseCase lectura paginada de los datasets CSV auxiliares.
type DatasetUseCase struct {
	reader repository.DatasetReader
}

// NewDatasetUseCase construye el caso de uso.
func NewDatasetUseCase(reader repository.DatasetReader) *DatasetUseCase {
	return &DatasetUseCase{reader: reader}
}

// Read devuelve una página del dataset. ErrDatasetNotFound si el nombre o el archivo no existen.
func (uc *DatasetUseCase) Read(ctx context.Context, name string, page dto.PageRequest) (*dto.DatasetPageDTO, error) {
	rows, total, err := uc.reader.ReadDataset(ctx, name, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []map[string]string{}
	}
	return &dto.DatasetPageDTO{
		Dataset: name,
		Rows:    rows,
		Page:    dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
