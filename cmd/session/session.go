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

package session

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-tof/pkg/command"
	"jinr.ru/greenlab/go-tof/pkg/config"
)

// NewConnectCommand creates the command for the hardware connect handshake.
func NewConnectCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to the simulated hardware",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			if err := apiClient.Connect(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "hardware connected")
			return nil
		},
	}
	return cmd
}

// NewDisconnectCommand creates the command that drops the hardware link.
func NewDisconnectCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect from the simulated hardware",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			if err := apiClient.Disconnect(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "hardware disconnected")
			return nil
		},
	}
	return cmd
}
