package decay

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	req := require.New(t)

	req.Equal(e(15, 17).String(), ToWad(big.NewInt(1500000), 6).String())
	req.Equal("1500000", FromWad(e(15, 17), 6).String())
	req.Equal("1", FromWad(big.NewInt(1999999999999), 6).String())
	req.Equal("0", Convert(nil, 6, 18).String())
	req.Equal("42", Convert(big.NewInt(42), 8, 8).String())
}

func TestMulDiv(t *testing.T) {
	req := require.New(t)

	v, err := MulDivUp(big.NewInt(10), big.NewInt(10), big.NewInt(3))
	req.NoError(err)
	req.Equal("34", v.String())

	v, err = MulDivDown(big.NewInt(10), big.NewInt(10), big.NewInt(3))
	req.NoError(err)
	req.Equal("33", v.String())

	v, err = MulDivUp(big.NewInt(9), big.NewInt(2), big.NewInt(3))
	req.NoError(err)
	req.Equal("6", v.String())

	_, err = MulDivUp(big.NewInt(1), big.NewInt(1), big.NewInt(0))
	req.ErrorIs(err, ErrDivisionByZero)

	_, err = MulDivDown(big.NewInt(-1), big.NewInt(1), big.NewInt(1))
	req.ErrorIs(err, ErrNegativeAmount)
}

func TestPaymentRoundTrip(t *testing.T) {
	req := require.New(t)

	price := e(5005, 16) // 50.05 per whole unit, 18 decimals payment
	for _, decimals := range []uint8{6, 8, 18} {
		quantity := e(100000, decimals)
		payment, err := PaymentFor(quantity, price, decimals)
		req.NoError(err)
		req.Equal(e(5005000, 18).String(), payment.String())

		back, err := QuantityFor(payment, price, decimals)
		req.NoError(err)
		diff := new(big.Int).Sub(quantity, back)
		req.True(diff.Sign() >= 0 && diff.Cmp(big.NewInt(1)) <= 0, "decimals %d lost %s", decimals, diff)
	}
}

func TestPaymentRoundsUp(t *testing.T) {
	req := require.New(t)

	// one base unit of a 6 decimals token at 1.000000000000000001 payment per whole unit
	payment, err := PaymentFor(big.NewInt(1), new(big.Int).Add(e(1, 18), big.NewInt(1)), 6)
	req.NoError(err)
	req.Equal("1000000000001", payment.String())

	back, err := QuantityFor(payment, new(big.Int).Add(e(1, 18), big.NewInt(1)), 6)
	req.NoError(err)
	req.Equal("1", back.String())

	_, err = QuantityFor(big.NewInt(1), big.NewInt(0), 6)
	req.ErrorIs(err, ErrDivisionByZero)
}
