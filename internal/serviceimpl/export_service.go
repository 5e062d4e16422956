package serviceimpl

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/PayRam/go-team-tree/service"
	"github.com/goccy/go-json"
)

type exportService struct{}

var _ service.ExportService = &exportService{}

func NewExportService() *exportService {
	return &exportService{}
}

// SerializeTree pretty-prints whatever tree object is currently held, raw or
// reconstructed. It never fails: a nil tree or a marshalling error yields
// "{}", so the export action stays available even before data is loaded.
func (s *exportService) SerializeTree(v any) string {
	if isNil(v) {
		return "{}"
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}

// isNil also catches typed nils such as a (*models.MemberNode)(nil) held
// after a failed build, which would otherwise serialize to "null".
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// ExportFileName follows the convention the mobile share sheet expects.
func (s *exportService) ExportFileName(at time.Time) string {
	return fmt.Sprintf("team-tree-%d.json", at.UnixMilli())
}

func (s *exportService) WriteExport(dir string, v any) (string, error) {
	path := filepath.Join(dir, s.ExportFileName(time.Now()))
	if err := os.WriteFile(path, []byte(s.SerializeTree(v)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
