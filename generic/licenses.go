package generic

import "github.com/Tomaz-Vieira/spec-bioimage-io/constraint"

// spdxLicenseIDs is the closed set of accepted license identifiers, drawn
// from the SPDX license list. Custom licenses outside this set are rejected;
// unlisted values fail even when they look reasonable.
var spdxLicenseIDs = []string{
	"0BSD",
	"AAL",
	"AFL-1.1", "AFL-1.2", "AFL-2.0", "AFL-2.1", "AFL-3.0",
	"AGPL-1.0-only", "AGPL-1.0-or-later", "AGPL-3.0-only", "AGPL-3.0-or-later",
	"Apache-1.0", "Apache-1.1", "Apache-2.0",
	"Artistic-1.0", "Artistic-1.0-Perl", "Artistic-2.0",
	"BSD-1-Clause", "BSD-2-Clause", "BSD-2-Clause-Patent", "BSD-3-Clause",
	"BSD-3-Clause-Clear", "BSD-3-Clause-LBNL", "BSD-4-Clause", "BSD-4-Clause-Shortened",
	"BSL-1.0",
	"CC-BY-1.0", "CC-BY-2.0", "CC-BY-2.5", "CC-BY-3.0", "CC-BY-4.0",
	"CC-BY-NC-1.0", "CC-BY-NC-2.0", "CC-BY-NC-2.5", "CC-BY-NC-3.0", "CC-BY-NC-4.0",
	"CC-BY-NC-ND-1.0", "CC-BY-NC-ND-2.0", "CC-BY-NC-ND-2.5", "CC-BY-NC-ND-3.0", "CC-BY-NC-ND-4.0",
	"CC-BY-NC-SA-1.0", "CC-BY-NC-SA-2.0", "CC-BY-NC-SA-2.5", "CC-BY-NC-SA-3.0", "CC-BY-NC-SA-4.0",
	"CC-BY-ND-1.0", "CC-BY-ND-2.0", "CC-BY-ND-2.5", "CC-BY-ND-3.0", "CC-BY-ND-4.0",
	"CC-BY-SA-1.0", "CC-BY-SA-2.0", "CC-BY-SA-2.5", "CC-BY-SA-3.0", "CC-BY-SA-4.0",
	"CC-PDDC", "CC0-1.0",
	"CDDL-1.0", "CDDL-1.1",
	"CECILL-1.0", "CECILL-1.1", "CECILL-2.0", "CECILL-2.1", "CECILL-B", "CECILL-C",
	"ClArtistic",
	"ECL-1.0", "ECL-2.0",
	"EFL-1.0", "EFL-2.0",
	"EPL-1.0", "EPL-2.0",
	"EUPL-1.0", "EUPL-1.1", "EUPL-1.2",
	"FSFAP", "FSFUL", "FSFULLR", "FTL",
	"GFDL-1.1-only", "GFDL-1.1-or-later", "GFDL-1.2-only", "GFDL-1.2-or-later",
	"GFDL-1.3-only", "GFDL-1.3-or-later",
	"GPL-1.0-only", "GPL-1.0-or-later", "GPL-2.0-only", "GPL-2.0-or-later",
	"GPL-3.0-only", "GPL-3.0-or-later",
	"HPND", "IJG", "ISC", "ImageMagick", "Intel",
	"LGPL-2.0-only", "LGPL-2.0-or-later", "LGPL-2.1-only", "LGPL-2.1-or-later",
	"LGPL-3.0-only", "LGPL-3.0-or-later",
	"LPL-1.0", "LPL-1.02",
	"MIT", "MIT-0", "MIT-CMU", "MIT-advertising", "MIT-enna", "MIT-feh", "MITNFA",
	"MPL-1.0", "MPL-1.1", "MPL-2.0", "MPL-2.0-no-copyleft-exception",
	"MS-PL", "MS-RL",
	"NCSA", "OFL-1.0", "OFL-1.1", "OLDAP-2.8",
	"OSL-1.0", "OSL-1.1", "OSL-2.0", "OSL-2.1", "OSL-3.0",
	"PDDL-1.0", "PHP-3.0", "PHP-3.01", "PostgreSQL", "Python-2.0",
	"QPL-1.0", "RPL-1.1", "RPL-1.5", "RPSL-1.0", "Ruby", "SGI-B-2.0", "SISSL", "Sleepycat",
	"UPL-1.0", "Unicode-DFS-2016", "Unlicense", "VSL-1.0", "Vim", "W3C",
	"WTFPL", "X11", "XFree86-1.1", "Xnet", "ZPL-1.1", "ZPL-2.0", "ZPL-2.1",
	"Zend-2.0", "Zlib", "libpng-2.0", "libtiff", "xinetd",
}

// LicenseEnum is the license field constraint shared by every catalog.
var LicenseEnum = constraint.NewEnum(spdxLicenseIDs...)
