package urls

// Endpoints and documentation links used by userdeck.

// DefaultAPIBaseURL is the public jsonplaceholder service the users
// gateway talks to when no other base URL is configured.
const DefaultAPIBaseURL = "https://jsonplaceholder.typicode.com"

// LocalFakeAPI is where 'userdeck-fakeapi serve' listens by default.
const LocalFakeAPI = "http://localhost:8089"

// ProjectHome is shown by 'userdeck version'.
const ProjectHome = "https://github.com/muurk/userdeck"

// TroubleshootingGuide covers connectivity and configuration problems.
const TroubleshootingGuide = "https://github.com/muurk/userdeck#troubleshooting"
