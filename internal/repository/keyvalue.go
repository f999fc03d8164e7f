package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

var ErrNotInteger = errors.New("stored value is not an integer")

// KeyValueStore keeps scalar settings by key. A missing key is reported with found=false, not an error.
type KeyValueStore interface {
	GetString(ctx context.Context, key string) (value string, found bool, err error)
	GetInt(ctx context.Context, key string) (value int, found bool, err error)

	SetString(ctx context.Context, key, value string) error
	SetInt(ctx context.Context, key string, value int) error

	// SetStrings writes all values as one batch: readers see either none or all of them.
	SetStrings(ctx context.Context, values map[string]string) error
}

type stringGetter interface {
	GetString(ctx context.Context, key string) (string, bool, error)
}

// getInt - integers are stored in their decimal string form.
func getInt(ctx context.Context, store stringGetter, key string) (int, bool, error) {
	raw, found, err := store.GetString(ctx, key)
	if err != nil || !found {
		return 0, found, err
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("%w: key %s value %q", ErrNotInteger, key, raw)
	}

	return value, true, nil
}
