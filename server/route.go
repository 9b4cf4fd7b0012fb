package server

import "github.com/matryer/way"

const URI_LINK = "/link"
const URI_CMD = "/cmd/:verb"

func (s *PadServer) Routes() *way.Router {
	router := way.NewRouter()
	router.HandleFunc("GET", URI_LINK, s.HandleLink())
	router.HandleFunc("POST", URI_CMD, s.HandleCommand())
	return router
}
