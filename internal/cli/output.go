package cli

import (
	"encoding/json"
	"fmt"

	"github.com/sosmarketplace/sos-board/internal/board"
	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/internal/marketplace"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
)

// Result is what a command prints after its reload.
type Result struct {
	Message   string               `json:"message,omitempty"`
	VendorKey string               `json:"vendorKey,omitempty"`
	ItemID    string               `json:"itemId,omitempty"`
	Role      board.Role           `json:"role"`
	Tab       items.Tab            `json:"tab"`
	Snapshot  marketplace.Snapshot `json:"snapshot"`
}

func (s *session) print(res Result) error {
	if s.opts.Format == "json" {
		res.Role = s.state.Identity.Role
		res.Tab = s.state.Tab
		res.Snapshot = s.state.Snapshot
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if res.Message != "" {
		if _, err := fmt.Fprintf(s.out, "%s\n\n", res.Message); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(s.out, board.Render(s.state))
	return err
}

// preview keeps the session on the board's latest local state and, in text
// mode, redraws it on stderr while a save is still in flight.
func (s *session) preview(st board.State) {
	s.state = st
	if s.opts.Format == "json" || s.progress == nil {
		return
	}
	fmt.Fprintf(s.progress, "Saving...\n\n%s\n", board.Render(st))
}

// ErrorMessage is the text shown for a failed command: the board's own
// message when there is one.
func ErrorMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		return typed.Message()
	}
	return err.Error()
}
