package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/application/file/dto"
	"github.com/labpool/labpool/internal/infrastructure/persistence/models"
	"github.com/labpool/labpool/internal/infrastructure/repository"
	"github.com/labpool/labpool/internal/infrastructure/storage"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

func setup(t *testing.T) (*Service, string) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	log := logger.NewNopLogger()
	root := t.TempDir()
	store, err := storage.NewLocalStorage(root, 1, log)
	require.NoError(t, err)
	return NewService(repository.NewFileRepository(gdb, log), store, log), root
}

func upload(t *testing.T, svc *Service, module, body string) *dto.FileDTO {
	f, err := svc.Upload(context.Background(), UploadCommand{
		UploaderID:   "user-1",
		ModuleName:   module,
		OriginalName: "Report.PDF",
		ContentType:  "application/pdf",
		Content:      strings.NewReader(body),
	})
	require.NoError(t, err)
	return f
}

func TestService_UploadAndDownload(t *testing.T) {
	svc, root := setup(t)
	ctx := context.Background()

	f := upload(t, svc, "pool", "lab results")
	assert.Equal(t, "Report.PDF", f.FileName)
	assert.Equal(t, "pool", f.ModuleName)
	assert.Equal(t, int64(len("lab results")), f.FileSize)
	assert.True(t, strings.HasPrefix(f.FilePath, "pool/"))
	assert.True(t, strings.HasSuffix(f.FilePath, ".pdf"))

	dl, err := svc.Download(ctx, f.ID)
	require.NoError(t, err)
	body, err := io.ReadAll(dl.Content)
	require.NoError(t, err)
	require.NoError(t, dl.Content.Close())
	assert.Equal(t, "lab results", string(body))

	require.NoError(t, os.Remove(filepath.Join(root, filepath.FromSlash(f.FilePath))))
	_, err = svc.Download(ctx, f.ID)
	assert.True(t, errors.IsNotFoundError(err), "missing bytes are a 404")
}

func TestService_UploadRejectsUnknownModule(t *testing.T) {
	svc, _ := setup(t)
	_, err := svc.Upload(context.Background(), UploadCommand{
		UploaderID:   "user-1",
		ModuleName:   "invoices",
		OriginalName: "a.txt",
		Content:      strings.NewReader("x"),
	})
	assert.True(t, errors.IsValidationError(err))
}

func TestService_SoftDeleteRestoreAndHardDelete(t *testing.T) {
	svc, root := setup(t)
	ctx := context.Background()
	f := upload(t, svc, "", "bytes")
	assert.Equal(t, "general", f.ModuleName)

	require.NoError(t, svc.Delete(ctx, f.ID))
	_, err := svc.Get(ctx, f.ID)
	assert.True(t, errors.IsNotFoundError(err))

	list, total, err := svc.List(ctx, dto.ListFilesRequest{Page: 1, PageSize: 10, IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.True(t, list[0].IsDeleted)

	restored, err := svc.Restore(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)

	require.NoError(t, svc.HardDelete(ctx, f.ID))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(f.FilePath)))
	assert.True(t, os.IsNotExist(err))
	_, err = svc.Get(ctx, f.ID)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestService_ListMine(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	upload(t, svc, "pool", "a")
	_, err := svc.Create(ctx, "user-2", dto.CreateFileRequest{
		FileName: "elsewhere.png", FileType: "image/png", FileSize: 10, FilePath: "cdn/elsewhere.png",
	})
	require.NoError(t, err)

	list, total, err := svc.List(ctx, dto.ListFilesRequest{Page: 1, PageSize: 10, UploaderID: "user-2"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "elsewhere.png", list[0].FileName)
}
