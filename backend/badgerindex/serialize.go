// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badgerindex

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the index record shapes. The shapes are
// small and stable enough that generated code would be more ceremony than
// the codecs themselves.

// fieldPair is one inline-field bag entry, stored as a sorted pair list so
// serialization is deterministic.
type fieldPair struct {
	Key   string
	Value string
}

// indexRecord is the stored shape of one task record.
type indexRecord struct {
	Path   string
	Line   int
	Symbol string
	Text   string
	Tags   []string
	Fields []fieldPair
}

// docEntry is the stored shape of one document entry.
type docEntry struct {
	Fingerprint uint64
	Tags        []string
}

var stringSliceMUS = ord.NewSliceSer[string](ord.String)

type fieldPairSer struct{}

var fieldPairMUS = fieldPairSer{}

func (fieldPairSer) Marshal(p fieldPair, bs []byte) (n int) {
	n = ord.String.Marshal(p.Key, bs)
	n += ord.String.Marshal(p.Value, bs[n:])
	return
}

func (fieldPairSer) Unmarshal(bs []byte) (p fieldPair, n int, err error) {
	p.Key, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	p.Value, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (fieldPairSer) Size(p fieldPair) int {
	return ord.String.Size(p.Key) + ord.String.Size(p.Value)
}

func (fieldPairSer) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var fieldPairSliceMUS = ord.NewSliceSer[fieldPair](fieldPairMUS)

type indexRecordSer struct{}

var indexRecordMUS = indexRecordSer{}

func (indexRecordSer) Marshal(r indexRecord, bs []byte) (n int) {
	n = ord.String.Marshal(r.Path, bs)
	n += varint.Int.Marshal(r.Line, bs[n:])
	n += ord.String.Marshal(r.Symbol, bs[n:])
	n += ord.String.Marshal(r.Text, bs[n:])
	n += stringSliceMUS.Marshal(r.Tags, bs[n:])
	n += fieldPairSliceMUS.Marshal(r.Fields, bs[n:])
	return
}

func (indexRecordSer) Unmarshal(bs []byte) (r indexRecord, n int, err error) {
	var n1 int
	r.Path, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	r.Line, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Symbol, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Tags, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	r.Fields, n1, err = fieldPairSliceMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (indexRecordSer) Size(r indexRecord) int {
	return ord.String.Size(r.Path) +
		varint.Int.Size(r.Line) +
		ord.String.Size(r.Symbol) +
		ord.String.Size(r.Text) +
		stringSliceMUS.Size(r.Tags) +
		fieldPairSliceMUS.Size(r.Fields)
}

func (indexRecordSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	for _, skip := range []func([]byte) (int, error){
		ord.String.Skip,
		varint.Int.Skip,
		ord.String.Skip,
		ord.String.Skip,
		stringSliceMUS.Skip,
		fieldPairSliceMUS.Skip,
	} {
		n1, err = skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

type docEntrySer struct{}

var docEntryMUS = docEntrySer{}

func (docEntrySer) Marshal(e docEntry, bs []byte) (n int) {
	n = varint.Uint64.Marshal(e.Fingerprint, bs)
	n += stringSliceMUS.Marshal(e.Tags, bs[n:])
	return
}

func (docEntrySer) Unmarshal(bs []byte) (e docEntry, n int, err error) {
	var n1 int
	e.Fingerprint, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	e.Tags, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (docEntrySer) Size(e docEntry) int {
	return varint.Uint64.Size(e.Fingerprint) + stringSliceMUS.Size(e.Tags)
}

func (docEntrySer) Skip(bs []byte) (n int, err error) {
	n, err = varint.Uint64.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = stringSliceMUS.Skip(bs[n:])
	n += n1
	return
}

// marshalIndexRecord serializes a task record to bytes.
func marshalIndexRecord(r indexRecord) []byte {
	buf := make([]byte, indexRecordMUS.Size(r))
	indexRecordMUS.Marshal(r, buf)
	return buf
}

// unmarshalIndexRecord deserializes a task record from bytes.
func unmarshalIndexRecord(data []byte) (indexRecord, error) {
	r, _, err := indexRecordMUS.Unmarshal(data)
	return r, err
}

// marshalDocEntry serializes a document entry to bytes.
func marshalDocEntry(e docEntry) []byte {
	buf := make([]byte, docEntryMUS.Size(e))
	docEntryMUS.Marshal(e, buf)
	return buf
}

// unmarshalDocEntry deserializes a document entry from bytes.
func unmarshalDocEntry(data []byte) (docEntry, error) {
	e, _, err := docEntryMUS.Unmarshal(data)
	return e, err
}
