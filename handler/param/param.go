package param

import (
	"encoding/json"
	"errors"
	"net/http"

	"tokenservice/core"
	"tokenservice/pkg/number"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
	"github.com/twitchtv/twirp"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)

	govalidator.TagMap["ethaddress"] = govalidator.Validator(core.IsHexAddress)
	govalidator.TagMap["decimal"] = govalidator.Validator(func(str string) bool {
		_, err := number.ParseDecimal(str)
		return err == nil
	})
}

// Binding decode the query string of GET requests or the json body of the
// others into v, then validate it with its `valid` tags
func Binding(r *http.Request, v interface{}) error {
	if err := decode(r, v); err != nil {
		return twirp.NewError(twirp.InvalidArgument, err.Error())
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return twirp.NewError(twirp.InvalidArgument, err.Error())
	}

	return nil
}

func decode(r *http.Request, v interface{}) error {
	if r.Method == http.MethodGet {
		return decoder.Decode(v, r.URL.Query())
	}

	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("empty body")
	}

	dec := json.NewDecoder(r.Body)
	// numbers stay textual, amounts never pass through float64
	dec.UseNumber()
	return dec.Decode(v)
}
