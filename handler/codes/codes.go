package codes

import (
	"errors"
	"strconv"

	"tokenservice/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) twirp.Error {
	var twerr twirp.Error
	if !errors.As(err, &twerr) {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// From classify err by the error code it carries
func From(err error) twirp.Error {
	var twerr twirp.Error
	if errors.As(err, &twerr) {
		return twerr
	}

	code := core.CodeOf(err)
	switch code {
	case core.ErrUnknownAsset, core.ErrUnknownFeed:
		return With(twirp.NotFoundError(err.Error()), int(code))
	case core.ErrConversion, core.ErrInvalidSlippage:
		return With(twirp.NewError(twirp.InvalidArgument, err.Error()), int(code))
	case core.ErrChainQuery:
		return With(twirp.NewError(twirp.Unavailable, err.Error()), int(code))
	default:
		return With(err, int(code))
	}
}

// Get get error code
func Get(twerr twirp.Error) int {
	if v := twerr.Meta(CustomCodeKey); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			return code
		}
	}

	switch twerr.Code() {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(twerr.Code())
	}
}

// Status http status of twerr
func Status(twerr twirp.Error) int {
	return twirp.ServerHTTPStatusFromErrorCode(twerr.Code())
}
