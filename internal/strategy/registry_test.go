package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/MohanLi/tickbench/pkg/errors"
)

type RegistryTestSuite struct {
	suite.Suite
	registry Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) SetupTest() {
	suite.registry = NewRegistry()
}

func (suite *RegistryTestSuite) TestRegisterAndGet() {
	naive := NewNaiveAverage()
	suite.Require().NoError(suite.registry.Register(naive))

	got, err := suite.registry.Get(NaiveStrategyName)
	suite.NoError(err)
	suite.Same(naive, got.(*NaiveAverage))
}

func (suite *RegistryTestSuite) TestRegisterDuplicateFails() {
	suite.Require().NoError(suite.registry.Register(NewNaiveAverage()))

	err := suite.registry.Register(NewNaiveAverage())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyAlreadyExists))
}

func (suite *RegistryTestSuite) TestGetMissingFails() {
	_, err := suite.registry.Get("does_not_exist")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyNotFound))
}

func (suite *RegistryTestSuite) TestListIsSorted() {
	suite.Require().NoError(suite.registry.Register(NewCumulativeAverage()))
	suite.Require().NoError(suite.registry.Register(NewNaiveAverage()))

	suite.Equal([]string{CumulativeStrategyName, NaiveStrategyName}, suite.registry.List())
}

func (suite *RegistryTestSuite) TestRemove() {
	suite.Require().NoError(suite.registry.Register(NewNaiveAverage()))
	suite.Require().NoError(suite.registry.Remove(NaiveStrategyName))

	_, err := suite.registry.Get(NaiveStrategyName)
	suite.Error(err)
}

func (suite *RegistryTestSuite) TestRemoveMissingFails() {
	err := suite.registry.Remove("does_not_exist")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyNotFound))
}

func (suite *RegistryTestSuite) TestNewDefaultRegistry() {
	registry, err := NewDefaultRegistry(DefaultWindowSize)
	suite.Require().NoError(err)

	suite.Equal(
		[]string{CumulativeStrategyName, NaiveStrategyName, WindowedStrategyName},
		registry.List(),
	)
}

func (suite *RegistryTestSuite) TestNewDefaultRegistryRejectsInvalidWindow() {
	registry, err := NewDefaultRegistry(0)
	suite.Require().Error(err)
	suite.Nil(registry)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}
