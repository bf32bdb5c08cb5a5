package repository

import (
	"math/big"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/harvest"
)

type ledgerRewardSource struct {
	ledger domain.TokenLedger
}

// NewLedgerRewardSource treats the whole rewardAsset balance of a source as accrued rewards
func NewLedgerRewardSource(ledger domain.TokenLedger) harvest.RewardSource {
	return &ledgerRewardSource{ledger}
}

func (im *ledgerRewardSource) Harvest(c ctx.Ctx, source domain.Address, rewardAsset domain.Address, to domain.Address) (*big.Int, error) {
	accrued, err := im.ledger.BalanceOf(c, rewardAsset, source)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "source": source, "asset": rewardAsset}).Error("ledger.BalanceOf failed")
		return nil, err
	}
	if accrued.Sign() == 0 {
		return accrued, nil
	}
	if err := im.ledger.Transfer(c, rewardAsset, source, to, accrued); err != nil {
		c.WithFields(log.Fields{"err": err, "source": source, "asset": rewardAsset, "amount": accrued}).Error("ledger.Transfer failed")
		return nil, err
	}
	return accrued, nil
}
