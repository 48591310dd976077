package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type TickTestSuite struct {
	suite.Suite
}

func TestTickSuite(t *testing.T) {
	suite.Run(t, new(TickTestSuite))
}

func (suite *TickTestSuite) TestTickStruct() {
	ts := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	tick := Tick{
		Timestamp: ts,
		Symbol:    "SYVB",
		Price:     100.25,
	}

	suite.Equal(ts, tick.Timestamp)
	suite.Equal("SYVB", tick.Symbol)
	suite.Equal(100.25, tick.Price)
}

func (suite *TickTestSuite) TestTickValueSemantics() {
	original := Tick{
		Timestamp: time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC),
		Symbol:    "SYVB",
		Price:     100.25,
	}

	clone := original
	clone.Price = 999.0

	// Copies are independent, so shared ticks cannot be mutated through a copy
	suite.Equal(100.25, original.Price)
	suite.Equal(999.0, clone.Price)
}
