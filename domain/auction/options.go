package auction

import (
	"github.com/x-xyz/goauction/domain"
)

type findAllOptions struct {
	SortBy      *string
	SortDir     *domain.SortDir
	Offset      *int32
	Limit       *int32
	Key         *Key
	Source      *domain.Address
	Asset       *domain.Address
	IsFinalized *bool
}

type FindAllOptions func(*findAllOptions) error

func GetFindAllOptions(opts ...FindAllOptions) (findAllOptions, error) {
	res := findAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithSort(sortby string, sortdir domain.SortDir) FindAllOptions {
	return func(options *findAllOptions) error {
		options.SortBy = &sortby
		options.SortDir = &sortdir
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptions {
	return func(options *findAllOptions) error {
		if offset < 0 || limit < 0 {
			return domain.ErrBadParamInput
		}
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithKey(key Key) FindAllOptions {
	return func(options *findAllOptions) error {
		lower := key.ToLower()
		options.Key = &lower
		return nil
	}
}

func WithSource(source domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		lower := source.ToLower()
		options.Source = &lower
		return nil
	}
}

func WithAsset(asset domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		lower := asset.ToLower()
		options.Asset = &lower
		return nil
	}
}

func WithFinalized(finalized bool) FindAllOptions {
	return func(options *findAllOptions) error {
		options.IsFinalized = &finalized
		return nil
	}
}
