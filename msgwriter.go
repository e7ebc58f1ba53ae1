// Package msgwriter is the MSG layout orchestrator: it walks a
// msgmodel.Message once and emits the top-level property stream, the
// per-recipient and per-attachment sub-storages, and the named-property
// skeleton into a cfb.Builder, then finalizes the CFB image.
//
// Grounded on pymsgkit/writer.go's MSGWriter.save/_write_properties/
// _write_recipient/_write_attachment (original_source), restructured
// around the cfb.Builder/mapi.Property types instead of a single class
// owning both the property dict and the CFB writer.
package msgwriter

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/yuphing-ong/outlook-msg-writer/cfb"
	"github.com/yuphing-ong/outlook-msg-writer/mapi"
	"github.com/yuphing-ong/outlook-msg-writer/msgerr"
	"github.com/yuphing-ong/outlook-msg-writer/msgmodel"
)

const nameIDStorageName = "__nameid_version1.0"

// Save runs the derivations (spec §4.3) and the MSG layout algorithm
// (spec §4.5), then finalizes the CFB image to dst. dst is written to in
// ascending sector order by cfb.Builder.WriteTo; Save itself performs no
// buffering beyond that.
func Save(m *msgmodel.Message, dst io.Writer) error {
	m.ApplySaveDerivations()

	b := cfb.NewBuilder()

	if err := writeMessageProperties(b, m); err != nil {
		return err
	}
	if err := writeRecipients(b, m); err != nil {
		return err
	}
	if err := writeAttachments(b, m); err != nil {
		return err
	}
	if err := writeNamedPropertySkeleton(b); err != nil {
		return err
	}

	return b.WriteTo(dst)
}

// SaveFile opens path, writes the message to it, and removes the
// partially-written file on any failure — no partial commit (spec §7).
func SaveFile(m *msgmodel.Message, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &msgerr.IoError{Op: "create " + path, Err: err}
	}

	if err := Save(m, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return &msgerr.IoError{Op: "close " + path, Err: err}
	}
	return nil
}

// writeMessageProperties emits the message-level /__properties_version1.0
// stream and its variable-length sibling streams. The message-level
// header carries the richer 24-byte layout of spec §4.5 step 1
// (reserved + next_recipient_id + next_attachment_id + recipient_count +
// attachment_count) — distinct from the 8-byte header recipient/
// attachment sub-storages use, a distinction pymsgkit/writer.go's
// _write_properties does not make (original_source uses a uniform
// 8-byte header everywhere).
func writeMessageProperties(b *cfb.Builder, m *msgmodel.Message) error {
	props := m.Properties()

	header := make([]byte, 24)
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(m.Recipients)))
	binary.LittleEndian.PutUint32(header[12:16], uint32(len(m.Attachments)))
	binary.LittleEndian.PutUint32(header[16:20], uint32(len(m.Recipients)))
	binary.LittleEndian.PutUint32(header[20:24], uint32(len(m.Attachments)))

	return writePropertiesStream(b, cfb.RootDID, header, props)
}

// writePropertiesStream writes one __properties_version1.0 stream (with
// the given header prefix) plus one __substg1.0_* stream per
// variable-length property, under parent. Spec §4.5 step 1 requires a
// 16-byte property entry for every property — fixed and variable alike,
// tag-sorted — not just the fixed ones: for a variable property the
// entry's 8-byte value slot holds its encoded payload's length rather
// than the value itself (mapi.Property.FixedEntry handles both cases).
func writePropertiesStream(b *cfb.Builder, parent uint32, header []byte, props []mapi.Property) error {
	data := append([]byte{}, header...)
	for _, p := range props {
		entry, err := p.FixedEntry()
		if err != nil {
			return err
		}
		data = append(data, entry...)
	}
	if _, err := b.AddStream("__properties_version1.0", data, parent); err != nil {
		return err
	}

	for _, p := range props {
		if p.IsFixed() {
			continue
		}
		name, payload, err := p.VariableStream()
		if err != nil {
			return err
		}
		if _, err := b.AddStream(name, payload, parent); err != nil {
			return err
		}
	}
	return nil
}

func writeRecipients(b *cfb.Builder, m *msgmodel.Message) error {
	for idx, r := range m.Recipients {
		storageDID, err := b.AddStorage(fmt.Sprintf("__recip_version1.0_#%08X", idx), cfb.RootDID)
		if err != nil {
			return err
		}
		props := msgmodel.RecipientProperties(idx, r)
		msgmodel.SortPropertiesByTag(props)
		if err := writePropertiesStream(b, storageDID, make([]byte, 8), props); err != nil {
			return err
		}
	}
	return nil
}

func writeAttachments(b *cfb.Builder, m *msgmodel.Message) error {
	for idx, a := range m.Attachments {
		storageDID, err := b.AddStorage(fmt.Sprintf("__attach_version1.0_#%08X", idx), cfb.RootDID)
		if err != nil {
			return err
		}
		props := msgmodel.AttachmentProperties(idx, a)
		msgmodel.SortPropertiesByTag(props)
		if err := writePropertiesStream(b, storageDID, make([]byte, 8), props); err != nil {
			return err
		}
	}
	return nil
}

// writeNamedPropertySkeleton emits the minimal __nameid_version1.0
// storage of spec §4.5 step 5. pymsgkit/writer.go has no equivalent —
// the Python original never implements named properties at all — so
// this is built fresh from the spec's literal byte layout.
func writeNamedPropertySkeleton(b *cfb.Builder) error {
	storageDID, err := b.AddStorage(nameIDStorageName, cfb.RootDID)
	if err != nil {
		return err
	}

	guidStream := make([]byte, 16)
	if _, err := b.AddStream("__substg1.0_00020102", guidStream, storageDID); err != nil {
		return err
	}

	entryStream := make([]byte, 8) // name offset/id=0, GUID index=0, kind/type=0
	if _, err := b.AddStream("__substg1.0_00030102", entryStream, storageDID); err != nil {
		return err
	}
	return nil
}
