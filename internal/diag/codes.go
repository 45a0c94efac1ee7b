package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// call-site findings
	LogInfo           Code = 1000
	LogUnknownLevel   Code = 1001
	LogDuplicateID    Code = 1002
	LogEmptyID        Code = 1003
	LogMissingMessage Code = 1004
	LogIDExhausted    Code = 1005

	// I/O
	IOInfo      Code = 4000
	IOReadDir   Code = 4001
	IOReadFile  Code = 4002
	IOWriteFile Code = 4003
	IOManifest  Code = 4004

	// project / configuration
	PrjInfo      Code = 5000
	PrjBadConfig Code = 5001
	PrjBadFilter Code = 5002
	PrjBadMode   Code = 5003
	PrjBadRoot   Code = 5004
)

var codeDescription = map[Code]string{
	UnknownCode:       "Unknown error",
	LogInfo:           "Call-site information",
	LogUnknownLevel:   "Unknown log level",
	LogDuplicateID:    "Duplicate log identifier",
	LogEmptyID:        "Empty log identifier",
	LogMissingMessage: "Missing log message comment",
	LogIDExhausted:    "Could not generate a unique identifier",
	IOInfo:            "I/O information",
	IOReadDir:         "Failed to list directory",
	IOReadFile:        "Failed to read file",
	IOWriteFile:       "Failed to write file",
	IOManifest:        "Failed to write manifest",
	PrjInfo:           "Project information",
	PrjBadConfig:      "Invalid configuration",
	PrjBadFilter:      "Invalid directory filter",
	PrjBadMode:        "Invalid update mode",
	PrjBadRoot:        "Invalid scan root",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LOG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Kind groups codes into the failure classes callers branch on.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindIO
	KindGrammar
	KindDuplicateID
	KindEmptyID
	KindMissingMessage
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindGrammar:
		return "grammar"
	case KindDuplicateID:
		return "duplicate-id"
	case KindEmptyID:
		return "empty-id"
	case KindMissingMessage:
		return "missing-message"
	case KindConfig:
		return "config"
	}
	return "unknown"
}

// Kind returns the failure class of the code.
func (c Code) Kind() Kind {
	switch c {
	case LogUnknownLevel:
		return KindGrammar
	case LogDuplicateID, LogIDExhausted:
		return KindDuplicateID
	case LogEmptyID:
		return KindEmptyID
	case LogMissingMessage:
		return KindMissingMessage
	}
	switch ic := int(c); {
	case ic >= 4000 && ic < 5000:
		return KindIO
	case ic >= 5000 && ic < 6000:
		return KindConfig
	}
	return KindUnknown
}
