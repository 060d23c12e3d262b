package version

// Version is the current release version
const Version = "0.4.2"
