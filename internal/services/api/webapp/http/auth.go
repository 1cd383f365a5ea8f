package http

import (
	stdhttp "net/http"
	"strings"

	"trainerbot/internal/core/initdata"
	perr "trainerbot/internal/platform/errors"
	pnet "trainerbot/internal/platform/net"
)

// HeaderInitData carries the raw init data string
const HeaderInitData = "X-Telegram-Init-Data"

// InitDataAuth authenticates Mini App requests by their signed init data
// The payload may also arrive as "Authorization: tma <initData>"
type InitDataAuth struct {
	V *initdata.Verifier
}

// Authenticate implements middleware.AuthPort
func (a InitDataAuth) Authenticate(r *stdhttp.Request) (pnet.Principal, error) {
	raw := r.Header.Get(HeaderInitData)
	if raw == "" {
		if scheme, rest, ok := strings.Cut(r.Header.Get("Authorization"), " "); ok && strings.EqualFold(scheme, "tma") {
			raw = strings.TrimSpace(rest)
		}
	}
	if raw == "" {
		return pnet.Principal{}, initdata.ErrMissingSignature
	}

	p, err := a.V.Verify(raw)
	if err != nil {
		return pnet.Principal{}, err
	}
	u, err := p.User()
	if err != nil {
		return pnet.Principal{}, perr.Wrap(err, perr.ErrorCodeUnauthorized, "init data: no usable user")
	}
	return pnet.Principal{
		UserID:       u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LanguageCode: u.LanguageCode,
		QueryID:      p.QueryID(),
		AuthDate:     p.AuthDate(),
	}, nil
}
