package repository

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

const (
	SortById        = "id"
	SortByStartTime = "startTime"
	SortByEndTime   = "endTime"
)

func makeFindQuery(optFns ...auction.FindAllOptions) (bson.M, error) {
	opts, err := auction.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	query := bson.M{}

	if opts.Key != nil {
		query["source"] = opts.Key.Source
		query["asset"] = opts.Key.Asset
	}

	if opts.Source != nil {
		query["source"] = *opts.Source
	}

	if opts.Asset != nil {
		query["asset"] = *opts.Asset
	}

	if opts.IsFinalized != nil {
		query["isFinalized"] = *opts.IsFinalized
	}

	return query, nil
}

func makeSort(optFns ...auction.FindAllOptions) (string, error) {
	opts, err := auction.GetFindAllOptions(optFns...)
	if err != nil {
		return "", err
	}
	if opts.SortBy == nil || opts.SortDir == nil {
		return SortById, nil
	}
	if !isSortable(*opts.SortBy) {
		return "", domain.ErrBadParamInput
	}
	if *opts.SortDir == domain.SortDirDesc {
		return "-" + *opts.SortBy, nil
	}
	return *opts.SortBy, nil
}

func isSortable(by string) bool {
	switch by {
	case SortById, SortByStartTime, SortByEndTime:
		return true
	}
	return false
}

// matches implements the same filter as makeFindQuery for in-memory records
func matches(a *auction.Auction, optFns ...auction.FindAllOptions) (bool, error) {
	opts, err := auction.GetFindAllOptions(optFns...)
	if err != nil {
		return false, err
	}
	if opts.Key != nil && !a.Key.Equals(*opts.Key) {
		return false, nil
	}
	if opts.Source != nil && !a.Key.Source.Equals(*opts.Source) {
		return false, nil
	}
	if opts.Asset != nil && !a.Key.Asset.Equals(*opts.Asset) {
		return false, nil
	}
	if opts.IsFinalized != nil && a.IsFinalized != *opts.IsFinalized {
		return false, nil
	}
	return true, nil
}

func sortAuctions(as []*auction.Auction, by string) {
	desc := len(by) > 0 && by[0] == '-'
	if desc {
		by = by[1:]
	}
	less := func(i, j int) bool {
		switch by {
		case SortByStartTime:
			if !as[i].StartTime.Equal(as[j].StartTime) {
				return as[i].StartTime.Before(as[j].StartTime)
			}
		case SortByEndTime:
			if !as[i].EndTime.Equal(as[j].EndTime) {
				return as[i].EndTime.Before(as[j].EndTime)
			}
		}
		return as[i].Id < as[j].Id
	}
	sort.SliceStable(as, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}

func paginate(as []*auction.Auction, optFns ...auction.FindAllOptions) ([]*auction.Auction, error) {
	opts, err := auction.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}
	if opts.Offset != nil {
		off := int(*opts.Offset)
		if off >= len(as) {
			return []*auction.Auction{}, nil
		}
		as = as[off:]
	}
	if opts.Limit != nil && *opts.Limit > 0 && int(*opts.Limit) < len(as) {
		as = as[:*opts.Limit]
	}
	return as, nil
}
