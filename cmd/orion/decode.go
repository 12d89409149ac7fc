package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/opd-ai/orion/limits"
	"github.com/opd-ai/orion/packets"
	"github.com/spf13/cobra"
)

// maxCapture bounds the bytes one decode invocation accepts.
const maxCapture = 16 << 20

func decodeCmd() *cobra.Command {
	var direction string

	cmd := &cobra.Command{
		Use:   "decode <hex>...",
		Short: "Decode a captured stream of packets",
		Long: `Decode hex-encoded frames and print each packet.

Arguments are concatenated, so a capture may be split across several
arguments. Whitespace and colons inside the hex are ignored.

The direction names the peer that reads the bytes: "server" for frames a
client sent, "client" for frames the server sent.`,
		Example: `  orion decode --direction server 0f00010b5465727261726961313934`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := parseDirection(direction)
			if err != nil {
				return err
			}
			raw, err := parseHex(args)
			if err != nil {
				return err
			}
			if err := limits.ValidateFrameSize(raw, maxCapture); err != nil {
				return fmt.Errorf("capture: %w", err)
			}
			return decodeStream(cmd.OutOrStdout(), raw, dir)
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", "server", `reader of the frames: "server" or "client"`)

	return cmd
}

func parseDirection(s string) (packets.Direction, error) {
	switch strings.ToLower(s) {
	case "server", "to-server":
		return packets.ToServer, nil
	case "client", "to-client":
		return packets.ToClient, nil
	default:
		return 0, fmt.Errorf("unknown direction %q: want server or client", s)
	}
}

func parseHex(args []string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, strings.Join(args, ""))

	raw, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return raw, nil
}

// decodeStream prints every frame in raw. It stops at the first frame that
// does not decode and reports its offset.
func decodeStream(w io.Writer, raw []byte, dir packets.Direction) error {
	offset := 0
	for n := 0; offset < len(raw); n++ {
		p, size, err := packets.Decode(raw[offset:], dir)
		if err != nil {
			return fmt.Errorf("frame %d at offset %d: %w", n, offset, err)
		}
		fmt.Fprintf(w, "#%d offset=%d length=%d id=%d %s\n", n, offset, size, p.ID(), describe(p))
		offset += size
	}
	return nil
}

func describe(p packets.Packet) string {
	switch pk := p.(type) {
	case *packets.ModulePacket:
		return fmt.Sprintf("%T %T %+v", pk, pk.Module, pk.Module)
	case *packets.UnknownPacket:
		return fmt.Sprintf("%T payload=%x", pk, pk.Payload)
	default:
		return fmt.Sprintf("%T %+v", p, p)
	}
}
