package soapapi

import (
	"bytes"
	_ "embed"
	"net/http"
)

//go:embed musicstream.wsdl
var wsdl []byte

const wsdlAddress = "http://localhost:8080/soap"

// serveWSDL returns the service contract with the endpoint address pointed at the host that was asked.
func serveWSDL(w http.ResponseWriter, r *http.Request) {
	doc := wsdl
	if r.Host != "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		doc = bytes.Replace(wsdl, []byte(wsdlAddress), []byte(scheme+"://"+r.Host+"/soap"), 1)
	}
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
