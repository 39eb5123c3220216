package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
)

// KeyPrefix namespaces every report cache entry so bulk invalidation can
// be scoped to this subsystem
const KeyPrefix = "report:"

// BuildKey derives a deterministic cache key from an endpoint name and its
// resolved parameter set. Params must be a fixed-field struct so the JSON
// serialization order is canonical; identical inputs always produce the
// identical key.
func BuildKey(endpoint string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		// Fixed-field param structs cannot fail to marshal; keep the key
		// deterministic anyway.
		data = []byte(err.Error())
	}
	sum := md5.Sum(data)
	return KeyPrefix + endpoint + ":" + hex.EncodeToString(sum[:])
}
