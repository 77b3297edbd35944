package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpnvalentinperez/BotTranferTelegram/pkg/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestLedger(t *testing.T) (*Ledger, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	led, err := New(mem, Options{AllowNegative: true})
	require.NoError(t, err)
	return led, mem
}

func TestAddAccumulates(t *testing.T) {
	led, mem := newTestLedger(t)

	res, err := led.Add(dec("999999.50"))
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(dec("999999.50")))
	assert.False(t, res.Crossed)

	res, err = led.Add(dec("0.50"))
	require.NoError(t, err)
	assert.Equal(t, "1000000.00", res.Total.StringFixed(2))
	assert.True(t, res.Crossed, "second add must cross the milestone")

	// Every mutation persisted.
	assert.Equal(t, 2, mem.Saves())
	saved, err := mem.Load()
	require.NoError(t, err)
	assert.True(t, saved.AvisoMillon)
}

func TestMilestoneFiresOncePerEpoch(t *testing.T) {
	led, _ := newTestLedger(t)

	crossings := 0
	for _, amt := range []string{"400000", "700000", "100000"} {
		res, err := led.Add(dec(amt))
		require.NoError(t, err)
		if res.Crossed {
			crossings++
		}
	}
	assert.Equal(t, 1, crossings)

	// Dropping below and climbing back must not re-fire without a reset.
	_, err := led.Add(dec("-500000"))
	require.NoError(t, err)
	res, err := led.Add(dec("600000"))
	require.NoError(t, err)
	assert.False(t, res.Crossed)
	assert.True(t, led.MilestoneReached())

	// Reset re-arms; the next crossing fires exactly once more.
	require.NoError(t, led.Reset())
	assert.False(t, led.MilestoneReached())
	res, err = led.Add(dec("1000000"))
	require.NoError(t, err)
	assert.True(t, res.Crossed)
}

func TestSetBalanceOverwritesAndChecksMilestone(t *testing.T) {
	led, _ := newTestLedger(t)

	_, err := led.Add(dec("42.10"))
	require.NoError(t, err)

	res, err := led.SetBalance(dec("2500000"))
	require.NoError(t, err)
	assert.Equal(t, "2500000.00", res.Total.StringFixed(2))
	assert.True(t, res.Crossed)
	assert.True(t, led.Balance().Equal(dec("2500000")))
}

func TestReset(t *testing.T) {
	led, mem := newTestLedger(t)

	_, err := led.SetBalance(dec("1500000"))
	require.NoError(t, err)
	require.True(t, led.MilestoneReached())

	require.NoError(t, led.Reset())
	assert.True(t, led.Balance().IsZero())
	assert.False(t, led.MilestoneReached())

	saved, err := mem.Load()
	require.NoError(t, err)
	assert.True(t, saved.Saldo.IsZero())
	assert.False(t, saved.AvisoMillon)
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("1234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", d.StringFixed(2))

	d, err = ParseAmount("1234,56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", d.StringFixed(2))

	for _, in := range []string{"", "abc", "12a", "1.234,56"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
}

func TestRejectNonPositiveWhenConfigured(t *testing.T) {
	mem := store.NewMemory()
	led, err := New(mem, Options{AllowNegative: false})
	require.NoError(t, err)

	_, err = led.Add(dec("100"))
	require.NoError(t, err)

	for _, amt := range []string{"0", "-5"} {
		_, err := led.Add(dec(amt))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.Equal(t, "100.00", led.Balance().StringFixed(2))
}

func TestLoadsExistingState(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Save(store.State{Saldo: dec("1200000"), AvisoMillon: true}))

	led, err := New(mem, Options{AllowNegative: true})
	require.NoError(t, err)
	assert.True(t, led.Balance().Equal(dec("1200000")))

	// Already above threshold and already notified: no re-fire.
	res, err := led.Add(dec("10"))
	require.NoError(t, err)
	assert.False(t, res.Crossed)
}

type failingStore struct {
	state store.State
	fail  bool
}

func (f *failingStore) Load() (store.State, error) { return f.state, nil }
func (f *failingStore) Save(s store.State) error {
	if f.fail {
		return errors.New("backend caído")
	}
	f.state = s
	return nil
}

func TestSaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	fs := &failingStore{fail: true}
	led, err := New(fs, Options{AllowNegative: true})
	require.NoError(t, err)

	res, err := led.Add(dec("300.25"))
	require.NoError(t, err, "save failures must not surface to the user")
	assert.Equal(t, "300.25", res.Total.StringFixed(2))
	assert.Equal(t, "300.25", led.Balance().StringFixed(2))
	assert.True(t, fs.state.Saldo.IsZero(), "backend must be untouched after a failed save")
}
