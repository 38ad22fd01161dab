package profile

import (
	"github.com/jatinmourya/ng-angular-setup/clierror"
)

var (
	ErrProfileUnreadable = clierror.New("failed to read profile").
				WithCode(clierror.ErrCodeProfileInvalid).
				WithHuman("The setup profile could not be read.").
				WithHelp("Check the path passed to --profile and that the file is accessible.")

	ErrProfileMalformed = clierror.New("failed to parse profile").
				WithCode(clierror.ErrCodeProfileInvalid).
				WithHuman("The setup profile is not valid YAML.").
				WithHelp("Re-create the profile by running a fresh setup, it is written next to the generated project.")

	ErrProfileIncomplete = clierror.New("profile is missing required fields").
				WithCode(clierror.ErrCodeProfileInvalid).
				WithHuman("The setup profile is missing required fields.").
				WithHelp("A replayable profile needs at least a project name and an Angular version.")

	ErrProfileTooNew = clierror.New("unsupported profile schema version").
				WithCode(clierror.ErrCodeProfileInvalid).
				WithHuman("The setup profile was written by a newer version of ng-setup.").
				WithHelp("Upgrade ng-setup or re-create the profile with this version.")
)
