package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/VinEdw/mastermind-pvp/internal/game"
)

// newGameReq is the optional JSON body of POST /game/new.
// Unset fields keep the value from the query string or the server defaults.
type newGameReq struct {
	Colors     *int         `json:"colors"`
	Slots      *int         `json:"slots"`
	Duplicates *bool        `json:"duplicates"`
	Guesses    *int         `json:"guesses"`
	Solution   []game.Color `json:"solution"` // optional fixed solution (testing)
}

// rulesFromRequest layers query options, then body options, over defaults.
// Query options use the same names as the body; duplicates accepts "on".
func rulesFromRequest(r *http.Request, defaults game.Rules) (game.Rules, game.Sequence, error) {
	rules := defaults
	if err := applyQuery(&rules, r.URL.Query()); err != nil {
		return rules, nil, err
	}

	var req newGameReq
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return rules, nil, fmt.Errorf("bad json: %w", err)
		}
	}
	if req.Colors != nil {
		rules.Colors = *req.Colors
	}
	if req.Slots != nil {
		rules.Slots = *req.Slots
	}
	if req.Duplicates != nil {
		rules.Duplicates = *req.Duplicates
	}
	if req.Guesses != nil {
		rules.Guesses = *req.Guesses
	}
	return rules, game.Sequence(req.Solution), nil
}

func applyQuery(rules *game.Rules, q url.Values) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"colors", &rules.Colors},
		{"slots", &rules.Slots},
		{"guesses", &rules.Guesses},
	}
	for _, o := range ints {
		if !q.Has(o.name) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(q.Get(o.name)))
		if err != nil {
			return fmt.Errorf("%s: not a number", o.name)
		}
		*o.dst = n
	}
	if q.Has("duplicates") {
		b, err := parseSwitch(q.Get("duplicates"))
		if err != nil {
			return err
		}
		rules.Duplicates = b
	}
	return nil
}

// parseSwitch reads checkbox-style values ("on"/"off") as well as strconv bools.
func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("duplicates: %q is not a switch value", s)
	}
	return b, nil
}
