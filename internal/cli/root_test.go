package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosmarketplace/sos-board/api/routes"
	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/internal/marketplace"
	"github.com/sosmarketplace/sos-board/internal/orders"
	"github.com/sosmarketplace/sos-board/internal/vendors"
	"github.com/sosmarketplace/sos-board/pkg/config"
	"github.com/sosmarketplace/sos-board/pkg/db/dbtest"
)

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"view", "login", "register", "order", "toggle", "add-item", "delete-item", "sold-out", "clear-orders", "save", "delete-vendor"}

	for _, name := range commands {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"server", "as", "tab", "timeout", "format"} {
		require.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "text", cmd.PersistentFlags().Lookup("format").DefValue)
	assert.Equal(t, "now", cmd.PersistentFlags().Lookup("tab").DefValue)
}

func TestInvalidFlagsAreRejected(t *testing.T) {
	_, err := run(t, "http://127.0.0.1:1", "view", "--format", "yaml")
	assert.ErrorContains(t, err, "invalid format")

	_, err = run(t, "http://127.0.0.1:1", "view", "--tab", "later")
	assert.ErrorContains(t, err, "invalid tab")
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	client := dbtest.New(t)
	conn := client.DB()
	clock := func() time.Time { return time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC) }

	vendorRepo := vendors.NewRepository(conn)
	itemRepo := items.NewRepository(conn)
	orderRepo := orders.NewRepository(conn)

	marketplaceSvc, err := marketplace.NewService(marketplace.NewRepository(conn), clock)
	require.NoError(t, err)
	registerSvc, err := vendors.NewRegisterService(vendors.RegisterServiceParams{TX: client, Vendors: vendorRepo, Items: itemRepo, Now: clock})
	require.NoError(t, err)
	vendorSvc, err := vendors.NewService(vendorRepo, itemRepo, orderRepo, client, clock)
	require.NoError(t, err)
	itemSvc, err := items.NewService(itemRepo, client, clock)
	require.NoError(t, err)
	orderSvc, err := orders.NewService(orderRepo)
	require.NoError(t, err)

	handler := routes.NewRouter(&config.Config{}, nil, client, nil, nil, nil, marketplaceSvc, registerSvc, vendorSvc, itemSvc, orderSvc)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()
	defaults := &config.ClientConfig{ServerURL: server, Timeout: 5 * time.Second}
	cmd := newRootCommand(&RootOptions{SuperadminKey: "mpsosadmin", LogLevel: "disabled", newAPI: httpAPI}, defaults)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBoardSessionEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	out, err := run(t, srv.URL, "view")
	require.NoError(t, err)
	assert.Contains(t, out, "No Items For Sale Yet, Sellers Preparing.")

	out, err = run(t, srv.URL, "register", "--full-name", "Juan Dela Cruz", "--account", "juan_acct", "--item-name", "Rice Cake", "--item-cash", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "Your vendor key is: JuJu")
	assert.Contains(t, out, "Rice Cake - Cash: ₱25.00 | Payday: N/A")

	itemID := items.DeriveItemID("JuJu", "Rice Cake", time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC).UnixMilli())

	_, err = run(t, srv.URL, "order", "JuJu", itemID, "--name", "Ana", "--account", "ana1", "--method", "payday")
	assert.ErrorContains(t, err, "Payday payment is not available for this item.")

	_, err = run(t, srv.URL, "order", "JuJu", itemID, "--name", "Ana", "--account", "ana1", "--method", "cash", "--note", "extra latik")
	require.NoError(t, err)

	out, err = run(t, srv.URL, "view", "--as", "JuJu")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as vendor JuJu")
	assert.Contains(t, out, "1. Ana ana1 - Rice Cake [Cash/extra latik/")

	out, err = run(t, srv.URL, "toggle", itemID, "--as", "JuJu")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Saving...\n"), out)
	assert.Equal(t, 2, strings.Count(out, "Rice Cake - Cash: ₱25.00 | Payday: N/A OFF"))

	out, err = run(t, srv.URL, "view", "--format", "json")
	require.NoError(t, err)
	var res Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Snapshot.Vendors["JuJu"].Items[itemID].IsAvailable)

	_, err = run(t, srv.URL, "delete-vendor", "JuJu", "--as", "JuJu")
	assert.ErrorContains(t, err, "Only the superadmin")

	out, err = run(t, srv.URL, "delete-vendor", "JuJu", "--as", "mpsosadmin")
	require.NoError(t, err)
	assert.Contains(t, out, `Vendor "JuJu" has been deleted.`)
	assert.Contains(t, out, "No vendors registered yet.")
}

func TestLoginRejectsUnknownKey(t *testing.T) {
	srv := newTestServer(t)
	_, err := run(t, srv.URL, "login", "Nope")
	require.Error(t, err)
	assert.Equal(t, "Invalid Vendor Key. Please ensure your key is correct or register as a new vendor.", ErrorMessage(err))
}
