package infra

// storage.go — voucher photo storage. Photos land on the local filesystem and
// are served back under /fotos/; the returned URL is what gets persisted in
// the verification line.

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FotoStorage writes voucher photo evidence and returns its public URL.
// Implements service.BlobStorage.
type FotoStorage struct {
	basePath string
	baseURL  string
}

func NewFotoStorage(basePath, dominio string) *FotoStorage {
	return &FotoStorage{basePath: basePath, baseURL: dominio + "/fotos"}
}

// BasePath is the directory the router serves as /fotos.
func (s *FotoStorage) BasePath() string { return s.basePath }

func (s *FotoStorage) GuardarFoto(ctx context.Context, cierreID uuid.UUID, metodo string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := filepath.Join(s.basePath, cierreID.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("foto storage: crear directorio: %w", err)
	}

	// Timestamped name: re-uploads for the same method never overwrite the
	// previous evidence.
	nombre := fmt.Sprintf("%s_%d.jpg", metodo, time.Now().UnixNano())
	ruta := filepath.Join(dir, nombre)
	if err := os.WriteFile(ruta, data, 0644); err != nil {
		return "", fmt.Errorf("foto storage: escribir %s: %w", ruta, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, cierreID, nombre), nil
}
