/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package main is the entry point of revisionctl, a command line tool that submits revision
// documents to the content API with a session stored on disk.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/serlo/frontend-gateway/internal/system/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer log.Sync()

	var cli struct {
		Globals

		Login  LoginCmd  `kong:"cmd,help='Stores a session for later submissions.'"`
		Logout LogoutCmd `kong:"cmd,help='Removes a stored session.'"`
		WhoAmI WhoAmICmd `kong:"cmd,name='whoami',help='Shows the user behind a stored session.'"`
		Submit SubmitCmd `kong:"cmd,help='Submits a revision document.'"`
		Events EventsCmd `kong:"cmd,help='Lists recent error events recorded by the gateway.'"`
	}

	parser := kong.Must(&cli,
		kong.Name("revisionctl"),
		kong.Description("Submits revisions to the content API."),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&cli.Globals),
		kong.UsageOnError())

	app, parseErr := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(parseErr)

	appErr := app.Run()
	app.FatalIfErrorf(appErr)
}
