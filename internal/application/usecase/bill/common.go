// Package bill contains bill-related use cases.
package bill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// logoFolder is the storage folder for vendor logos.
const logoFolder = "bills"

var allowedLogoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

func findOwnedBill(ctx context.Context, repo adapter.BillRepository, billID, userID uuid.UUID) (*entity.Bill, error) {
	bill, err := repo.FindByID(ctx, billID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBillNotFound) {
			return nil, domainerror.NewBillError(
				domainerror.ErrCodeBillNotFound,
				"bill not found",
				domainerror.ErrBillNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find bill: %w", err)
	}

	if bill.UserID != userID {
		return nil, domainerror.NewBillError(
			domainerror.ErrCodeUnauthorizedBillAccess,
			"not authorized to access this bill",
			domainerror.ErrUnauthorizedBillAccess,
		)
	}

	return bill, nil
}

// saveLogo validates and stores an uploaded logo, returning its public path.
func saveLogo(ctx context.Context, storage adapter.FileStorage, logo *adapter.FileUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(logo.Filename))
	if !allowedLogoExtensions[ext] {
		return "", domainerror.NewBillError(
			domainerror.ErrCodeInvalidLogo,
			"logo must be a png, jpg, gif, webp or svg image",
			domainerror.ErrInvalidLogo,
		)
	}

	path, err := storage.Save(ctx, logoFolder, uuid.NewString()+ext, logo.Content)
	if err != nil {
		return "", fmt.Errorf("failed to store logo: %w", err)
	}
	return path, nil
}

func removeLogo(ctx context.Context, storage adapter.FileStorage, path string) {
	if path == "" {
		return
	}
	if err := storage.Remove(ctx, path); err != nil {
		slog.Warn("Failed to remove bill logo", "path", path, "error", err)
	}
}
