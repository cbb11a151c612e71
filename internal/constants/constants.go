package constants

import "time"

const DefaultRetryInterval = 30 * time.Second
const DefaultScanDebounce = 15 * time.Second
const DefaultGroupUpdateInterval = 100 * time.Millisecond
const SunCheckInterval = time.Minute

const DefaultDeviceType = "huesence#daemon"

// bridge api error types
const HueErrorUnauthorizedUser = 1
const HueErrorLinkButtonNotPressed = 101

// pairing status values published on the status topic
const StatusScanning = "scanning"
const StatusConnected = "connected"
const StatusNoBridgesFound = "no_bridges_found"
const StatusTransportError = "transport_error"
const StatusNoLinkPushed = "no_link_pushed"
const StatusFail = "fail"
const StatusAmbiguous = "ambiguous"

// group matching schemes
const MatchSchemeExact = "exact"
const MatchSchemeDaytime = "daytime"

const DaytimeGroupSuffix = " daytime"

// state backends
const StateDriverFile = "file"
const StateDriverSQLite = "sqlite"
