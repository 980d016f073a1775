package natto

import (
	"fmt"

	"github.com/buruzaemon/natto-go/binding"
)

// Dictionary types.
const (
	SysDic = binding.SysDic
	UsrDic = binding.UsrDic
	UnkDic = binding.UnkDic
)

// DictionaryInfo is an immutable snapshot of one entry of the engine's
// dictionary-info list, read once at tagger construction.
type DictionaryInfo struct {
	FilePath string `json:"filepath"`
	Charset  string `json:"charset"`
	Size     int    `json:"size"`
	Type     int    `json:"type"`
	LSize    int    `json:"lsize"`
	RSize    int    `json:"rsize"`
	Version  int    `json:"version"`
}

// IsSysDic reports whether this is the system dictionary.
func (d DictionaryInfo) IsSysDic() bool { return d.Type == SysDic }

// IsUsrDic reports whether this is a user-defined dictionary.
func (d DictionaryInfo) IsUsrDic() bool { return d.Type == UsrDic }

// IsUnkDic reports whether this is the unknown-word dictionary.
func (d DictionaryInfo) IsUnkDic() bool { return d.Type == UnkDic }

func (d DictionaryInfo) String() string {
	return fmt.Sprintf(`<natto.DictionaryInfo filepath="%s", charset=%s, type=%d>`,
		d.FilePath, d.Charset, d.Type)
}

// walkDictionaries copies the nil-terminated dictionary-info linked list
// into snapshots.
func walkDictionaries(m binding.Model) []DictionaryInfo {
	var dicts []DictionaryInfo
	for d := m.DictionaryInfo(); d != nil; d = d.Next() {
		dicts = append(dicts, DictionaryInfo{
			FilePath: d.Filename(),
			Charset:  d.Charset(),
			Size:     d.Size(),
			Type:     d.Type(),
			LSize:    d.LSize(),
			RSize:    d.RSize(),
			Version:  d.Version(),
		})
	}
	return dicts
}
