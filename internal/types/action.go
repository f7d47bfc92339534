package types

import (
	"encoding/binary"

	sdkmath "cosmossdk.io/math"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/ethereum/go-ethereum/crypto"
)

const selectorLength = 4

// Action is a proposed administrative call: a target identity, an attached
// native value, an optional textual function signature, an opaque payload and
// the earliest time (eta, unix seconds) at which it may execute.
//
// Actions are never stored as structured records. The queue correlates
// queue/cancel/execute purely through TxHash; there is no sequence number.
type Action struct {
	Target    string      `json:"target"`
	Value     sdkmath.Int `json:"value"`
	Signature string      `json:"signature"`
	Data      []byte      `json:"data"`
	Eta       int64       `json:"eta"`
}

// TxHash returns the content-addressed fingerprint of the action: a
// double-SHA256 over a canonical length-prefixed serialization of the five
// fields. Equal fields always produce an equal hash; any field difference
// produces a different one.
func (a *Action) TxHash() chainhash.Hash {
	return chainhash.DoubleHashH(a.serialize())
}

// TxHashHex is the hex form of TxHash, used as the storage key.
func (a *Action) TxHashHex() string {
	return a.TxHash().String()
}

// serialize writes every field with a length prefix so that no two distinct
// actions share an encoding (e.g. signature "ab"+data "c" never collides
// with signature "a"+data "bc"). The value field carries a leading sign
// byte so a negative value never shares an encoding with its absolute
// value; a nil value encodes as zero.
func (a *Action) serialize() []byte {
	value := []byte{0x00}
	if !a.Value.IsNil() {
		if a.Value.IsNegative() {
			value[0] = 0x01
		}
		value = append(value, a.Value.BigInt().Bytes()...)
	}
	buf := make([]byte, 0, 8*4+len(a.Target)+len(value)+len(a.Signature)+len(a.Data)+8)
	buf = appendLengthPrefixed(buf, []byte(a.Target))
	buf = appendLengthPrefixed(buf, value)
	buf = appendLengthPrefixed(buf, []byte(a.Signature))
	buf = appendLengthPrefixed(buf, a.Data)
	buf = binary.BigEndian.AppendUint64(buf, uint64(a.Eta))
	return buf
}

func appendLengthPrefixed(buf, field []byte) []byte {
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(field)))
	return append(buf, field...)
}

// CallPayload builds the byte payload forwarded to the target on execution.
// An empty signature means Data is the raw payload; otherwise the payload is
// the 4-byte keccak256 selector of the signature followed by Data.
func (a *Action) CallPayload() []byte {
	if a.Signature == "" {
		return a.Data
	}
	selector := crypto.Keccak256([]byte(a.Signature))[:selectorLength]
	return append(selector, a.Data...)
}
