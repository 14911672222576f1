// Package platform defines the community platform the service manages roles
// on: which communities a user is in, which roles they hold, the role
// hierarchy, and the grant and revoke calls.
//
// Role assignment is always read live from the platform and never cached.
// The discord subpackage implements Platform over the Discord REST API and
// the mocks subpackage provides a testify mock.
package platform
