package codable

import "strings"

type codingPath []string

func (p codingPath) child(key string) codingPath {
	res := make(codingPath, len(p)+1)
	copy(res, p)
	res[len(p)] = key
	return res
}

func (p codingPath) String() string {
	return strings.Join(p, ".")
}
