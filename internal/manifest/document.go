// Package manifest serializes the call-site registry and reads it back.
package manifest

import (
	"encoding/xml"
	"fmt"

	"logmap/internal/logcall"
)

// SchemaVersion is bumped when Record changes incompatibly.
const SchemaVersion uint16 = 1

// Record is one call site as stored in a manifest.
type Record struct {
	ID       string  `xml:"Id" json:"Id" toml:"Id" msgpack:"Id"`
	Level    string  `xml:"Level" json:"Level" toml:"Level" msgpack:"Level"`
	Message  *string `xml:"Message,omitempty" json:"Message" toml:"Message" msgpack:"Message"`
	FilePath string  `xml:"FilePath" json:"FilePath" toml:"FilePath" msgpack:"FilePath"`
	Line     uint32  `xml:"Line" json:"Line" toml:"Line" msgpack:"Line"`
}

// Document is an ordered list of records.
type Document struct {
	XMLName xml.Name `xml:"LogCalls" json:"-" toml:"-" msgpack:"-"`
	Schema  uint16   `xml:"schema,attr,omitempty" json:"Schema" toml:"Schema" msgpack:"Schema"`
	Calls   []Record `xml:"CallInfo" json:"Calls" toml:"Calls" msgpack:"Calls"`
}

// FromRegistry builds a document in registry insertion order.
func FromRegistry(reg *logcall.Registry) *Document {
	items := reg.Items()
	doc := &Document{Schema: SchemaVersion, Calls: make([]Record, 0, len(items))}
	for _, info := range items {
		doc.Calls = append(doc.Calls, FromCallInfo(info))
	}
	return doc
}

// FromCallInfo converts one call site.
func FromCallInfo(info logcall.CallInfo) Record {
	rec := Record{
		ID:       info.ID,
		Level:    info.Level.String(),
		FilePath: info.FilePath,
		Line:     info.Line,
	}
	if info.Message != nil {
		rec.Message = logcall.Message(*info.Message)
	}
	return rec
}

// CallInfo converts the record back, validating its level name.
func (r Record) CallInfo() (logcall.CallInfo, error) {
	lvl, err := logcall.ParseLevel(r.Level)
	if err != nil {
		return logcall.CallInfo{}, fmt.Errorf("record %q: %w", r.ID, err)
	}
	info := logcall.CallInfo{
		ID:       r.ID,
		Level:    lvl,
		FilePath: r.FilePath,
		Line:     r.Line,
	}
	if r.Message != nil {
		info.Message = logcall.Message(*r.Message)
	}
	return info, nil
}

// Find returns the record with the given identifier.
func (d *Document) Find(id string) (Record, bool) {
	for _, rec := range d.Calls {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// Registry rebuilds a registry from the document.
func (d *Document) Registry() (*logcall.Registry, error) {
	reg := logcall.NewRegistry()
	for _, rec := range d.Calls {
		info, err := rec.CallInfo()
		if err != nil {
			return nil, err
		}
		if err := reg.Add(info); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
