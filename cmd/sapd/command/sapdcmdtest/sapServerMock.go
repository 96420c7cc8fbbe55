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

package sapdcmdtest

import (
	"github.com/codenotary/sap/pkg/logger"
	"github.com/codenotary/sap/pkg/server"
	"github.com/codenotary/sap/pkg/source"
)

// NewDefaultSAPServerMock returns a mock whose lifecycle calls all succeed.
func NewDefaultSAPServerMock() *SAPServerMock {
	m := &SAPServerMock{}
	m.InitializeF = func() error {
		return nil
	}
	m.StartF = func() error {
		return nil
	}
	m.StopF = func() error {
		return nil
	}
	return m
}

type SAPServerMock struct {
	Options *server.Options
	Logger  logger.Logger
	Src     source.Source

	InitializeF func() error
	StartF      func() error
	StopF       func() error
}

func (s *SAPServerMock) WithOptions(options *server.Options) server.SAPServerIf {
	s.Options = options
	return s
}

func (s *SAPServerMock) WithLogger(logger logger.Logger) server.SAPServerIf {
	s.Logger = logger
	return s
}

func (s *SAPServerMock) WithSource(src source.Source) server.SAPServerIf {
	s.Src = src
	return s
}

func (s *SAPServerMock) Initialize() error {
	return s.InitializeF()
}

func (s *SAPServerMock) Start() error {
	return s.StartF()
}

func (s *SAPServerMock) Stop() error {
	return s.StopF()
}
