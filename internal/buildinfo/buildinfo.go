package buildinfo

const Graffiti = " _____ ______ _____  _   _  _____\n|  __ \\| ___ \\  _  || | | ||  ___|\n| | __ | |_/ / | | || | | || |__\n| | \\ \\|    /| | | || | | ||  __|\n| |_/ /| |\\ \\\\ \\_/ /\\ \\_/ /| |___\n \\____/\\_| \\_|\\___/  \\___/ \\____/\n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "GROVE"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo
