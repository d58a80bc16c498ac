package file

import (
	"context"
	"io"

	"github.com/labpool/labpool/internal/application/file/dto"
	"github.com/labpool/labpool/internal/domain/file"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

const msgFileNotFound = "File not found"

type UploadCommand struct {
	UploaderID   string
	ModuleName   string
	OriginalName string
	ContentType  string
	Content      io.Reader
}

// Download is an open handle on stored bytes. The caller closes Content.
type Download struct {
	File    *dto.FileDTO
	Content io.ReadCloser
}

// Service manages file metadata and the bytes behind it.
type Service struct {
	fileRepo file.Repository
	storage  file.Storage
	logger   logger.Interface
}

func NewService(fileRepo file.Repository, storage file.Storage, logger logger.Interface) *Service {
	return &Service{
		fileRepo: fileRepo,
		storage:  storage,
		logger:   logger,
	}
}

// Upload stores the bytes first and removes them again when the metadata
// row cannot be written.
func (s *Service) Upload(ctx context.Context, cmd UploadCommand) (*dto.FileDTO, error) {
	module, err := file.ParseModuleName(cmd.ModuleName)
	if err != nil {
		return nil, err
	}

	path, size, err := s.storage.Save(ctx, module, cmd.OriginalName, cmd.Content)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		s.logger.Errorw("failed to store upload", "name", cmd.OriginalName, "error", err)
		return nil, errors.NewInternalError("Failed to store file")
	}

	contentType := cmd.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	f, err := file.NewFile(file.NewFileParams{
		FileName:   cmd.OriginalName,
		FileType:   contentType,
		FileSize:   size,
		FilePath:   path,
		ModuleName: module,
		UploaderID: cmd.UploaderID,
	})
	if err == nil {
		err = s.fileRepo.Create(ctx, f)
	}
	if err != nil {
		if rmErr := s.storage.Remove(ctx, path); rmErr != nil {
			s.logger.Warnw("failed to remove orphaned upload", "path", path, "error", rmErr)
		}
		return nil, err
	}
	return dto.ToFileDTO(f), nil
}

// Create registers metadata only.
func (s *Service) Create(ctx context.Context, uploaderID string, req dto.CreateFileRequest) (*dto.FileDTO, error) {
	module, err := file.ParseModuleName(req.ModuleName)
	if err != nil {
		return nil, err
	}
	f, err := file.NewFile(file.NewFileParams{
		FileName:   req.FileName,
		FileType:   req.FileType,
		FileSize:   req.FileSize,
		FilePath:   req.FilePath,
		ModuleName: module,
		UploaderID: uploaderID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.fileRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return dto.ToFileDTO(f), nil
}

func (s *Service) Get(ctx context.Context, id string) (*dto.FileDTO, error) {
	f, err := s.getLive(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToFileDTO(f), nil
}

func (s *Service) List(ctx context.Context, req dto.ListFilesRequest) ([]*dto.FileDTO, int64, error) {
	var module file.ModuleName
	if req.ModuleName != "" {
		m, err := file.ParseModuleName(req.ModuleName)
		if err != nil {
			return nil, 0, err
		}
		module = m
	}
	list, total, err := s.fileRepo.List(ctx, file.ListFilter{
		Page:           req.Page,
		PageSize:       req.PageSize,
		ModuleName:     module,
		UploaderID:     req.UploaderID,
		IncludeDeleted: req.IncludeDeleted,
	})
	if err != nil {
		return nil, 0, err
	}
	return dto.ToFileDTOs(list), total, nil
}

func (s *Service) Download(ctx context.Context, id string) (*Download, error) {
	f, err := s.getLive(ctx, id)
	if err != nil {
		return nil, err
	}
	rc, err := s.storage.Open(ctx, f.FilePath())
	if err != nil {
		return nil, err
	}
	return &Download{File: dto.ToFileDTO(f), Content: rc}, nil
}

func (s *Service) Update(ctx context.Context, id string, req dto.UpdateFileRequest) (*dto.FileDTO, error) {
	f, err := s.getLive(ctx, id)
	if err != nil {
		return nil, err
	}
	upd := file.FileUpdate{FileName: req.FileName}
	if req.ModuleName != nil {
		m, err := file.ParseModuleName(*req.ModuleName)
		if err != nil {
			return nil, err
		}
		upd.ModuleName = &m
	}
	if err := f.Apply(upd); err != nil {
		return nil, err
	}
	if err := s.fileRepo.Update(ctx, f); err != nil {
		return nil, err
	}
	return dto.ToFileDTO(f), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	f, err := s.getLive(ctx, id)
	if err != nil {
		return err
	}
	f.MarkDeleted()
	return s.fileRepo.Update(ctx, f)
}

func (s *Service) Restore(ctx context.Context, id string) (*dto.FileDTO, error) {
	f, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := f.Restore(); err != nil {
		return nil, err
	}
	if err := s.fileRepo.Update(ctx, f); err != nil {
		return nil, err
	}
	return dto.ToFileDTO(f), nil
}

// HardDelete removes the row, then the bytes. A missing physical file is
// not an error.
func (s *Service) HardDelete(ctx context.Context, id string) error {
	f, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.fileRepo.HardDelete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Remove(ctx, f.FilePath()); err != nil {
		s.logger.Warnw("file row deleted but bytes remain", "id", id, "path", f.FilePath(), "error", err)
	}
	s.logger.Infow("file hard deleted", "id", id)
	return nil
}

// Exists reports whether a live file with id exists.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.getLive(ctx, id)
	if errors.IsNotFoundError(err) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service) getLive(ctx context.Context, id string) (*file.File, error) {
	f, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.IsDeleted() {
		return nil, errors.NewNotFoundError(msgFileNotFound)
	}
	return f, nil
}
