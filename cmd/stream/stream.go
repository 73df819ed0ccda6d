/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package stream

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-tof/pkg/command"
	"jinr.ru/greenlab/go-tof/pkg/config"
)

const (
	PacketSizeOptionName = "packet-size"
	IntervalOptionName   = "interval"
	ChunkSizeOptionName  = "chunk-size"
)

// NewCommand creates the stream command with start/stop/status subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Control packet streaming",
	}
	cmd.AddCommand(NewStartCommand())
	cmd.AddCommand(NewFileCommand())
	cmd.AddCommand(NewStopCommand())
	cmd.AddCommand(NewStatusCommand())
	return cmd
}

// NewFileCommand creates the command that streams raw byte chunks of an
// arbitrary file on the daemon host, without point interpretation.
func NewFileCommand() *cobra.Command {
	var chunkSize, intervalMs int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "file PATH",
		Short: "Stream raw byte chunks of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			return apiClient.StreamFile(args[0], chunkSize, intervalMs)
		},
	}
	cmd.Flags().IntVar(&chunkSize, ChunkSizeOptionName, 0, "Bytes per packet, 0 means daemon minimum")
	cmd.Flags().IntVar(&intervalMs, IntervalOptionName, 0, "Milliseconds between packets")

	return cmd
}

func NewStartCommand() *cobra.Command {
	var packetSize, intervalMs int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start streaming packets",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			return apiClient.StreamStart(packetSize, intervalMs)
		},
	}
	cmd.Flags().IntVar(&packetSize, PacketSizeOptionName, 0, "Points per packet, 0 means daemon default")
	cmd.Flags().IntVar(&intervalMs, IntervalOptionName, -1, "Milliseconds between packets, -1 means daemon default")

	return cmd
}

func NewStopCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop streaming packets",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			return apiClient.StreamStop()
		},
	}
	return cmd
}

func NewStatusCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show session status",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			status, err := apiClient.Status()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "connected: %v\n", status.Connected)
			fmt.Fprintf(out, "streaming: %v\n", status.Streaming)
			if status.File != "" {
				fmt.Fprintf(out, "file: %s\n", status.File)
				fmt.Fprintf(out, "points: %d\n", status.Points)
			}
			fmt.Fprintf(out, "progress: %d%%\n", status.Progress)
			return nil
		},
	}
	return cmd
}
