package hyperwire

import (
	"log/slog"

	"github.com/pthm/hyperwire/lib/encoding"
)

// BodyEncoder is an alias for encoding.Encoder for convenience.
type BodyEncoder = encoding.Encoder

// DefaultContentType is the body encoding used when no enctype attribute is
// present, and the fallback for unregistered content types.
const DefaultContentType = encoding.ContentTypeURLEncoded

// EncoderRegistry maps content-type identifiers to body encoders. Entries
// are added by the embedding application and never implicitly removed. A
// lookup miss falls back to the default content type's encoder with a
// diagnostic; the exchange proceeds.
type EncoderRegistry struct {
	encoders map[string]BodyEncoder
	log      *slog.Logger
}

// NewEncoderRegistry creates a registry with the builtin encoders:
// url-encoded (the default), multipart, and JSON. Additional types, such as
// encoding.Msgpack, are added with Register:
//
//	engine.Encoders().Register(encoding.ContentTypeMsgpack, encoding.Msgpack)
func NewEncoderRegistry(log *slog.Logger) *EncoderRegistry {
	if log == nil {
		log = slog.New(discardHandler{})
	}
	return &EncoderRegistry{
		encoders: map[string]BodyEncoder{
			encoding.ContentTypeURLEncoded: encoding.URLEncoded,
			encoding.ContentTypeMultipart:  encoding.Multipart,
			encoding.ContentTypeJSON:       encoding.JSON,
		},
		log: log,
	}
}

// Register adds or replaces the encoder for a content type.
func (r *EncoderRegistry) Register(contentType string, enc BodyEncoder) {
	r.encoders[contentType] = enc
}

// Lookup returns the encoder for a content type, falling back to the
// default encoder when none is registered.
func (r *EncoderRegistry) Lookup(contentType string) BodyEncoder {
	if enc, ok := r.encoders[contentType]; ok {
		return enc
	}
	r.log.Warn("no body encoder registered, using default",
		"contentType", contentType, "default", DefaultContentType)
	return r.encoders[DefaultContentType]
}
