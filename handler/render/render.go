package render

import (
	"encoding/json"
	"net/http"

	"tokenservice/handler/codes"

	"github.com/sirupsen/logrus"
)

// H shortcut for map[string]interface{}
type H map[string]interface{}

type errorResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	writeJSON(w, http.StatusOK, v)
}

// Error write err with the status and code it is classified as
func Error(w http.ResponseWriter, err error) {
	twerr := codes.From(err)
	writeJSON(w, codes.Status(twerr), errorResponse{
		Code: codes.Get(twerr),
		Msg:  twerr.Msg(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render: encode response")
	}
}
