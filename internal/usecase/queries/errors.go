package queries

import (
	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"
)

// translateStoreErr maps repository kinds onto the shared sentinels; notFound names the missing entity.
func translateStoreErr(err error, notFound error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, notFound)
	case infra.IsKind(err, infra.KindUnavailable):
		return errs.Mark(err, errs.ErrTransientStore)
	default:
		return err
	}
}
