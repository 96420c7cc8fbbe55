/*
Copyright 2022 Codenotary Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package shell implements the sapadmin interactive shell, a line driven
// loop which queries the connected provider and can hop between
// registered providers without restarting.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"runtime"
	"strings"

	"github.com/peterh/liner"

	c "github.com/codenotary/sap/cmd/helper"
	"github.com/codenotary/sap/pkg/client"
)

type shell struct {
	commands     map[string]*command
	commandsList []*command
	helpMessage  string
	sapClient    client.SAPClient
	tokenReader  c.TokenReader
	options      *client.Options
	registryFile string
	context      context.Context
}

// Shell is the interactive command loop of sapadmin.
type Shell interface {
	Run()
	HelpMessage() string
}

// Init connects to the provider the options point at and prepares the
// command registry.
func Init(options *client.Options) (Shell, error) {
	sh := new(shell)
	sh.tokenReader = c.DefaultTokenReader
	sh.options = options
	sh.context = context.Background()
	var err error
	if sh.sapClient, err = client.NewSAPClient(options); err != nil {
		return nil, fmt.Errorf("Initialization failed: %s \n", err.Error())
	}
	sh.commands = make(map[string]*command)
	sh.commandsList = make([]*command, 0)
	sh.initCommands()
	sh.helpInit()
	return sh, nil
}

func (sh *shell) Register(cmd *command) {
	sh.commandsList = append(sh.commandsList, cmd)
	sh.commands[cmd.name] = cmd
}

func (sh *shell) HelpMessage() string {
	return sh.helpMessage
}

func (sh *shell) helpInit() {
	var namelen, shortlen int
	name := make([]string, 0)
	short := make([]string, 0)
	args := make([]string, 0)
	for i := range sh.commandsList {
		if len(sh.commandsList[i].name) > namelen {
			namelen = len(sh.commandsList[i].name)
		}
		if len(sh.commandsList[i].short) > shortlen {
			shortlen = len(sh.commandsList[i].short)
		}
		name = append(name, sh.commandsList[i].name)
		short = append(short, sh.commandsList[i].short)
		if len(sh.commandsList[i].args) == 0 {
			args = append(args, "")
		} else {
			args = append(args, strings.Join(sh.commandsList[i].args, ","))
		}
	}
	str := strings.Builder{}
	for i := range name {
		str.WriteString(padRight(name[i], " ", namelen+2))
		str.WriteString(padRight(short[i], " ", shortlen+2))
		if len(args[i]) > 0 {
			str.WriteString("args: " + args[i])
		}
		str.WriteString("\n")
	}
	str.WriteString("\n")
	sh.helpMessage = str.String()
}

// prompt shows the host of the provider the shell currently talks to.
func (sh *shell) prompt() string {
	u, err := url.Parse(sh.options.ServerURL)
	if err != nil || u.Host == "" {
		return "sap>"
	}
	return u.Host + ">"
}

func (sh *shell) Run() {
	l := liner.NewLiner()
	l.SetCompleter(sh.completer)
	defer l.Close()
	for {
		line, err := l.Prompt(sh.prompt())
		if err == liner.ErrInvalidPrompt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		l.AppendHistory(line)
		line = strings.TrimSuffix(line, "\n")
		arrCommandStr := strings.Fields(line)
		if len(arrCommandStr) == 0 {
			continue
		}
		passed := sh.checkCommand(arrCommandStr, l)
		if passed {
			sh.runCommand(arrCommandStr)
		}
	}
}

func (sh *shell) checkCommand(arrCommandStr []string, l *liner.State) bool {
	if arrCommandStr[0] == "exit" || arrCommandStr[0] == "quit" {
		l.Close()
		os.Exit(0)
	}
	switch arrCommandStr[0] {
	case "--help", "help", "-h":
		fmt.Fprint(os.Stdout, sh.helpMessage)
		return false
	case "clear":
		cleaner, ok := clear[runtime.GOOS]
		if !ok {
			fmt.Fprintf(os.Stdout, "ERROR: %s \n", "Current OS not supporting for this command.")
			return false
		}
		cleaner()
		return false
	}
	if len(arrCommandStr) == 2 && (arrCommandStr[1] == "--help" || arrCommandStr[1] == "-h") {
		helpline, err := sh.singleCommandHelp(arrCommandStr[0])
		if err != nil {
			suggestions := sh.correct(arrCommandStr[0])
			str := strings.Builder{}
			str.WriteString(fmt.Sprintf("ERROR: %s | %s  \n", "Command not found ", arrCommandStr[0]))
			if len(suggestions) != 0 {
				str.WriteString("Did you mean this ?\n")
				for i := range suggestions {
					str.WriteString(fmt.Sprintf("	%s \n", suggestions[i]))
				}
			}
			str.WriteString("Run --help for usage \n")
			fmt.Fprint(os.Stdout, str.String())
			return false
		}
		fmt.Fprintf(os.Stdout, "%v \n", helpline)
		return false
	}
	return true
}

func (sh *shell) runCommand(arrCommandStr []string) {
	command, ok := sh.commands[arrCommandStr[0]]
	if !ok {
		suggestions := sh.correct(arrCommandStr[0])
		str := strings.Builder{}
		str.WriteString(fmt.Sprintf("ERROR: %s | %s  \n", "Unknown command ", arrCommandStr[0]))
		if len(suggestions) != 0 {
			str.WriteString("\n")
			str.WriteString("Did you mean this ?\n")
			for i := range suggestions {
				str.WriteString(fmt.Sprintf("	%s \n", suggestions[i]))
			}
		}
		str.WriteString("\n")
		str.WriteString("Run --help for usage \n")
		fmt.Fprint(os.Stdout, str.String())
		return
	}
	if !command.variable && len(arrCommandStr[1:]) < len(command.args) {
		fmt.Fprintf(os.Stdout,
			"ERROR: Not enough arguments | %s needs %v , have %v . Use [command] --help for documentation. \n",
			command.name,
			len(command.args),
			len(arrCommandStr[1:]))
		return
	}
	if !command.variable && len(arrCommandStr[1:]) > len(command.args) {
		redunantArgs := arrCommandStr[len(command.args)+1:]
		fmt.Fprintf(os.Stdout, "INFO: Redunant argument(s) | %v \n", redunantArgs)
	}
	result, err := command.command(arrCommandStr[1:])
	if err != nil {
		fmt.Fprintf(os.Stdout, "ERROR: %s \n", err.Error())
		return
	}
	fmt.Fprintf(os.Stdout, "%v \n", result)
}

func (sh *shell) singleCommandHelp(cmdName string) (string, error) {
	cmd, ok := sh.commands[cmdName]
	if !ok {
		return "", errors.New("not found")
	}
	args := ""
	if len(cmd.args) > 0 {
		args = strings.Join(cmd.args, ",")
	}
	return fmt.Sprintf("%s %s args:%s", cmd.name, cmd.short, args), nil
}

// correct returns the registered command names within a short edit
// distance of s, for the unknown command hint.
func (sh *shell) correct(s string) []string {
	suggestions := make([]string, 0)
	for i := range sh.commandsList {
		if editDistance(s, sh.commandsList[i].name) <= 2 {
			suggestions = append(suggestions, sh.commandsList[i].name)
		}
	}
	return suggestions
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func padRight(str string, pad string, length int) string {
	for len(str) < length {
		str += pad
	}
	return str
}
