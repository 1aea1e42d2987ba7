package engine

import (
	"context"
	"errors"
	"io/fs"
)

// SourceLoader fetches kernel source by name.
type SourceLoader interface {
	Load(ctx context.Context, name string) ([]byte, error)
}

// FSLoader reads sources from a file system such as an embed.FS or os.DirFS.
type FSLoader struct {
	FS fs.FS
}

// Load reads name from the file system.
func (l FSLoader) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(l.FS, name)
}

// Layered tries each loader in order and returns the first source found.
type Layered []SourceLoader

// Load returns the first hit, or the last not-found error.
func (ls Layered) Load(ctx context.Context, name string) ([]byte, error) {
	err := error(fs.ErrNotExist)
	for _, l := range ls {
		if l == nil {
			continue
		}
		var src []byte
		src, err = l.Load(ctx, name)
		if err == nil {
			return src, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, err
}
