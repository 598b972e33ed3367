package discover

// Paths which are not exposed in robots.txt but might still serve a sitemap
// index page. Collected from observation of live news sites.
var sitemapIndexPaths = []string{
	"sitemap.xml",
	"sitemap.xml.gz",
	"sitemap_index.xml",
	"sitemap-index.xml",
	"sitemap_index.xml.gz",
	"sitemap-index.xml.gz",
	".sitemap.xml",
	"sitemap",
	"admin/config/search/xmlsitemap",
	"sitemap/sitemap-index.xml",

	// Arc publishing feeds, seen at ajc.com, inquirer.com, reuters.com
	"arc/outboundfeeds/sitemap-index/?outputType=xml",
	"arc/outboundfeeds/news-sitemap-index/?outputType=xml",
}

// Paths which might serve a Google News urlset even when absent from
// robots.txt. Each entry notes the publishers it was observed on.
var newsSitemapPaths = []string{
	"arc/outboundfeeds/news-sitemap/?outputType=xml",  // ajc, inquirer, reuters
	"arc/outboundfeeds/sitemap/latest/?outputType=xml", // dallasnews
	"feeds/sitemap_news.xml",                           // bloomberg
	"google-news-sitemap.xml",                          // ew.com, people.com
	"googlenewssitemap.xml",                            // axs.com, accesshollywood.com
	"news-sitemap.xml",                                 // gannett local sites, parade
	"news-sitemap-content.xml",                         // scrippsnews
	"news/sitemap_news.xml",                            // buzzfeed, npr
	"sitemap_news.xml",                                 // bloomberg, bizjournals, cnbc
	"sitemap/news.xml",                                 // cnn
	"sitemaps/news.xml",                                // cnet
	"sitemaps/new/news.xml.gz",                         // nytimes
	"sitemaps/sitemap-google-news.xml",                 // huffpost
	"tncms/sitemap/news.xml",                           // tncms local papers
}

// WellKnownPaths returns the candidate sitemap paths probed in addition to
// whatever robots.txt declares, relative to the site root
func WellKnownPaths() []string {
	paths := make([]string, 0, len(sitemapIndexPaths)+len(newsSitemapPaths))
	paths = append(paths, sitemapIndexPaths...)
	paths = append(paths, newsSitemapPaths...)
	return paths
}
