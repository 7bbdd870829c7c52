package hyperwire_test

import (
	"testing"

	"github.com/pthm/hyperwire"
	"github.com/pthm/hyperwire/lib/encoding"
)

func TestEncoderRegistryFallback(t *testing.T) {
	reg := hyperwire.NewEncoderRegistry(nil)

	enc := reg.Lookup("application/x-mystery")
	contentType, body, err := enc(hyperwire.Form{{Name: "a", Value: "1"}})
	if err != nil {
		t.Fatalf("fallback encoder failed: %v", err)
	}
	if contentType != encoding.ContentTypeURLEncoded {
		t.Errorf("fallback content type = %q, want urlencoded", contentType)
	}
	if string(body) != "a=1" {
		t.Errorf("fallback body = %q", body)
	}
}

func TestEncoderRegistryRegister(t *testing.T) {
	reg := hyperwire.NewEncoderRegistry(nil)
	reg.Register(encoding.ContentTypeMsgpack, encoding.Msgpack)

	contentType, body, err := reg.Lookup(encoding.ContentTypeMsgpack)(hyperwire.Form{{Name: "a", Value: "1"}})
	if err != nil {
		t.Fatalf("msgpack encoder failed: %v", err)
	}
	if contentType != encoding.ContentTypeMsgpack {
		t.Errorf("content type = %q", contentType)
	}
	if len(body) == 0 {
		t.Error("msgpack body is empty")
	}
}
