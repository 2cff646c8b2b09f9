// Package searchconsole implements the Google Search Console node: sites,
// sitemaps, search analytics queries and URL inspection over the Webmasters
// v3 and Search Console v1 APIs.
//
// Requests authenticate with an OAuth2 bearer token taken from the host's
// token source for the googleSearchConsoleOAuth2Api credential. The node
// never refreshes tokens itself.
package searchconsole
