package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	tests := []struct {
		desc       string
		address    string
		expIsValid bool
	}{
		{
			desc:       "invalid address",
			address:    "0x000",
			expIsValid: false,
		},
		{
			desc:       "valid address - real address",
			address:    "0x939ae6A4C8dfDBB1f7085189574F0A938013952A",
			expIsValid: true,
		},
		{
			desc:       "valid address - lower case",
			address:    "0x939ae6a4c8dfdbb1f7085189574f0a938013952b",
			expIsValid: true,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAddress(t.address), t.desc)
	}
}

func (s *ValidatorTestSuite) TestIsPositiveInt() {
	s.True(IsPositiveInt("1"))
	s.True(IsPositiveInt("1000000000000000000000000"))
	s.False(IsPositiveInt("0"))
	s.False(IsPositiveInt("-5"))
	s.False(IsPositiveInt("1.5"))
	s.False(IsPositiveInt(""))
}

func (s *ValidatorTestSuite) TestStructTags() {
	type buyRequest struct {
		Buyer    string `validate:"required,eth_addr"`
		Quantity string `validate:"required,positive_int"`
	}

	v := NewCustomValidator(New())
	s.NoError(v.Validate(buyRequest{Buyer: "0x939ae6a4c8dfdbb1f7085189574f0a938013952b", Quantity: "10"}))
	s.Error(v.Validate(buyRequest{Buyer: "0x01", Quantity: "10"}))
	s.Error(v.Validate(buyRequest{Buyer: "0x939ae6a4c8dfdbb1f7085189574f0a938013952b", Quantity: "0"}))
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
