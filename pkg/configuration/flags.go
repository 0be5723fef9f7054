/*
 * Copyright 2025 InfAI (CC SES)
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package configuration

import (
	"flag"
	"os"
)

var (
	ConfPath      string
	RestartReason string
)

func ParseFlags() {
	parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) {
	fs.StringVar(&ConfPath, "config", "", "path to config file")
	fs.StringVar(&RestartReason, "restart-reason", "power_on", "reason of the last restart (power_on, hard_reset, watchdog, deep_sleep, soft_reset)")
	_ = fs.Parse(args)
}
