package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestShippingStatus_IsTerminal verifies the terminal status set.
func TestShippingStatus_IsTerminal(t *testing.T) {
	terminal := []ShippingStatus{StatusDelivered, StatusFailed, StatusReturned, StatusCancelled}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "expected %s to be terminal", s)
	}

	active := []ShippingStatus{
		StatusPending, StatusReadyForShipping, StatusLabelGenerated, StatusShipped,
		StatusInTransit, StatusOutForDelivery, StatusPickedUp, StatusEnRoute,
		StatusNearby, StatusArrived, StatusReadyForPickup,
	}
	for _, s := range active {
		assert.False(t, s.IsTerminal(), "expected %s to be non-terminal", s)
	}
}

// TestAllowedNext_TerminalStatesHaveNoExits verifies no provider allows a
// transition out of a terminal state.
func TestAllowedNext_TerminalStatesHaveNoExits(t *testing.T) {
	providers := []ShippingProvider{ProviderCourier, ProviderPUDO, ProviderInHouse}
	terminal := []ShippingStatus{StatusDelivered, StatusFailed, StatusReturned, StatusCancelled}

	for _, provider := range providers {
		for _, status := range terminal {
			assert.Empty(t, AllowedNext(provider, status),
				"provider %s should allow no exits from %s", provider, status)
		}
	}
}

// TestAllowedNext_UnknownProvider verifies an unknown provider yields nothing.
func TestAllowedNext_UnknownProvider(t *testing.T) {
	assert.Nil(t, AllowedNext(ShippingProvider("carrier_pigeon"), StatusPending))
}

// TestIsValidTransition_CourierPath verifies the door-to-door courier path.
func TestIsValidTransition_CourierPath(t *testing.T) {
	assert.True(t, IsValidTransition(ProviderCourier, StatusPending, StatusReadyForShipping))
	assert.True(t, IsValidTransition(ProviderCourier, StatusReadyForShipping, StatusLabelGenerated))
	assert.True(t, IsValidTransition(ProviderCourier, StatusLabelGenerated, StatusShipped))
	assert.True(t, IsValidTransition(ProviderCourier, StatusLabelGenerated, StatusInTransit))
	assert.True(t, IsValidTransition(ProviderCourier, StatusShipped, StatusOutForDelivery))
	assert.True(t, IsValidTransition(ProviderCourier, StatusOutForDelivery, StatusDelivered))

	// Skipping ahead is not allowed.
	assert.False(t, IsValidTransition(ProviderCourier, StatusPending, StatusShipped))
	assert.False(t, IsValidTransition(ProviderCourier, StatusLabelGenerated, StatusDelivered))
	// PUDO and in-house stages are not reachable on the courier path.
	assert.False(t, IsValidTransition(ProviderCourier, StatusInTransit, StatusReadyForPickup))
	assert.False(t, IsValidTransition(ProviderCourier, StatusLabelGenerated, StatusPickedUp))
}

// TestIsValidTransition_PUDOPath verifies the locker path routes through
// ready_for_pickup instead of out_for_delivery.
func TestIsValidTransition_PUDOPath(t *testing.T) {
	assert.True(t, IsValidTransition(ProviderPUDO, StatusLabelGenerated, StatusInTransit))
	assert.True(t, IsValidTransition(ProviderPUDO, StatusInTransit, StatusReadyForPickup))
	assert.True(t, IsValidTransition(ProviderPUDO, StatusReadyForPickup, StatusDelivered))

	assert.False(t, IsValidTransition(ProviderPUDO, StatusInTransit, StatusOutForDelivery))
	assert.False(t, IsValidTransition(ProviderPUDO, StatusLabelGenerated, StatusShipped))
}

// TestIsValidTransition_InHousePath verifies the driver path.
func TestIsValidTransition_InHousePath(t *testing.T) {
	assert.True(t, IsValidTransition(ProviderInHouse, StatusLabelGenerated, StatusPickedUp))
	assert.True(t, IsValidTransition(ProviderInHouse, StatusPickedUp, StatusEnRoute))
	assert.True(t, IsValidTransition(ProviderInHouse, StatusEnRoute, StatusNearby))
	assert.True(t, IsValidTransition(ProviderInHouse, StatusNearby, StatusArrived))
	assert.True(t, IsValidTransition(ProviderInHouse, StatusArrived, StatusDelivered))

	// Drivers cannot return a parcel to sender; failures are the only branch.
	assert.False(t, IsValidTransition(ProviderInHouse, StatusEnRoute, StatusReturned))
	assert.False(t, IsValidTransition(ProviderInHouse, StatusPickedUp, StatusDelivered))
}

// TestValidateTransition_TerminalError verifies the terminal-state message.
func TestValidateTransition_TerminalError(t *testing.T) {
	err := ValidateTransition(ProviderCourier, StatusDelivered, StatusInTransit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Delivered is a final state")

	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, StatusDelivered, invalid.From)
	assert.Equal(t, StatusInTransit, invalid.To)
}

// TestValidateTransition_SkipError verifies the skip-ahead message uses labels.
func TestValidateTransition_SkipError(t *testing.T) {
	err := ValidateTransition(ProviderCourier, StatusPending, StatusDelivered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move shipment from Pending to Delivered")
}

// TestRequiresConfirmation verifies only the four outcome statuses confirm.
func TestRequiresConfirmation(t *testing.T) {
	assert.True(t, RequiresConfirmation(StatusDelivered))
	assert.True(t, RequiresConfirmation(StatusCancelled))
	assert.True(t, RequiresConfirmation(StatusFailed))
	assert.True(t, RequiresConfirmation(StatusReturned))

	assert.False(t, RequiresConfirmation(StatusShipped))
	assert.False(t, RequiresConfirmation(StatusInTransit))
	assert.False(t, RequiresConfirmation(StatusReadyForPickup))
}

// TestConfirmationCopy_Delivered verifies the delivered dialog copy.
func TestConfirmationCopy_Delivered(t *testing.T) {
	c := ConfirmationCopy(StatusOutForDelivery, StatusDelivered, "ORD-1001")

	assert.Equal(t, "Mark as Delivered?", c.Title)
	assert.Contains(t, c.Description, "ORD-1001")
	assert.Equal(t, "Mark Delivered", c.ConfirmText)
}

// TestConfirmationCopy_Cancelled verifies the cancel dialog copy.
func TestConfirmationCopy_Cancelled(t *testing.T) {
	c := ConfirmationCopy(StatusPending, StatusCancelled, "ORD-1002")

	assert.Equal(t, "Cancel Shipment?", c.Title)
	assert.Contains(t, c.Description, "ORD-1002")
}

// TestShippingStatus_HasLabel verifies the label threshold.
func TestShippingStatus_HasLabel(t *testing.T) {
	assert.False(t, StatusPending.HasLabel())
	assert.False(t, StatusReadyForShipping.HasLabel())
	assert.True(t, StatusLabelGenerated.HasLabel())
	assert.True(t, StatusInTransit.HasLabel())
	assert.True(t, StatusDelivered.HasLabel())
}

// TestShippingStatus_Label verifies display labels and the raw fallback.
func TestShippingStatus_Label(t *testing.T) {
	assert.Equal(t, "Out for Delivery", StatusOutForDelivery.Label())
	assert.Equal(t, "Driver Nearby", StatusNearby.Label())
	assert.Equal(t, "mystery", ShippingStatus("mystery").Label())
}
