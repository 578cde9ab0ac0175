// Package publicid converts internal user ids to the public form embedded in
// token claims and back.
//
// The encoding is a fixed-salt XOR plus bit rotation behind base64. It is
// reversible obfuscation, not encryption: anyone with this source can decode
// a public id. It exists so internal ids never appear verbatim in tokens,
// and must not be relied on for confidentiality.
package publicid

import "encoding/base64"

// Codec encodes internal ids into their public representation and decodes
// them back.
type Codec interface {
	Encode(internalID string) string
	Decode(publicID string) (string, error)
}

var salt = []byte("hJuVo cFg2B3 SDf7pa")

// XORCodec is the salt-XOR-and-rotate codec used since the first release.
// Tokens already issued depend on this exact transform.
type XORCodec struct{}

func (XORCodec) Encode(internalID string) string {
	bytes := []byte(internalID)
	for i := range bytes {
		bytes[i] ^= salt[i%len(salt)]
		bytes[i] = bytes[i]<<3 | bytes[i]>>5
	}
	return base64.StdEncoding.EncodeToString(bytes)
}

func (XORCodec) Decode(publicID string) (string, error) {
	bytes, err := base64.StdEncoding.DecodeString(publicID)
	if err != nil {
		return "", err
	}
	for i := range bytes {
		bytes[i] = bytes[i]>>3 | bytes[i]<<5
		bytes[i] ^= salt[i%len(salt)]
	}
	return string(bytes), nil
}
