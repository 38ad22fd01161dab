package analytics

const (
	eventRun            = "ng_setup_command_run"
	eventCommandCreate  = "ng_setup_command_create"
	eventCommandDoctor  = "ng_setup_command_doctor"
	eventCommandResolve = "ng_setup_command_resolve"
)

func TrackCommandRun() {
	TrackEvent(eventRun)
}

func TrackCommandCreate() {
	TrackEvent(eventCommandCreate)
}

func TrackCommandDoctor() {
	TrackEvent(eventCommandDoctor)
}

func TrackCommandResolve() {
	TrackEvent(eventCommandResolve)
}
